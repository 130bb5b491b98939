package models

import (
	"errors"
)

var (
	ErrGeneral           = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound  = errors.New("there is no")
	ErrInvalidReference  = errors.New("there is no resource for the ID you specified in the reference to another resource")
	ErrUsernameNotUnique = errors.New("this username is already taken")
)

var (
	ErrDuplicateTransaction = errors.New("an expense for this upstream transaction already exists")
	ErrDuplicateAccount     = errors.New("this account is already linked")
	ErrBudgetAlreadyExists  = errors.New("a budget for this category already exists")
)

var (
	ErrExpenseAmountNotPositive = errors.New("the expense amount must be positive")
	ErrBudgetAmountNotPositive  = errors.New("the budget amount must be positive")
	ErrVendorEmpty              = errors.New("the vendor must not be empty")
	ErrUsernameEmpty            = errors.New("the username must not be empty")
)
