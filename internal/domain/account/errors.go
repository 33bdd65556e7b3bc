package account

import "errors"

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrApproverAccessRequired = errors.New("approver access required")
)
