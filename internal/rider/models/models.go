package models

import (
	"fmt"
	"time"
)

// Caller is the principal invoking a rider operation. The transport fills it
// from verified credentials; an empty UID means the request was anonymous.
type Caller struct {
	UID string
}

func (c Caller) Authenticated() bool {
	return c.UID != ""
}

// CreateRiderRequest is the payload of the createRider callable.
type CreateRiderRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Complete reports whether every required field is non-empty. Values are
// not trimmed; whitespace-only input is accepted here and left to the
// identity provider's policy.
func (r CreateRiderRequest) Complete() bool {
	return r.Email != "" && r.Password != "" && r.Name != ""
}

// RiderProfile is the document written for each provisioned rider. UID is
// the identity account id; CreatedAt is assigned by the store.
type RiderProfile struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRiderResult struct {
	Message string `json:"message"`
}

// NewCreateRiderResult formats the confirmation returned to the admin.
func NewCreateRiderResult(name, email string) *CreateRiderResult {
	return &CreateRiderResult{Message: fmt.Sprintf("Successfully created rider %s (%s).", name, email)}
}

// Inventory is the ops view of provisioning state.
type Inventory struct {
	Accounts int `json:"accounts"`
	Riders   int `json:"riders"`
	// Unprofiled is the number of accounts without a rider profile.
	Unprofiled int `json:"unprofiledAccounts"`
}

func NewInventory(accounts, riders int) *Inventory {
	inv := &Inventory{Accounts: accounts, Riders: riders}
	if accounts > riders {
		inv.Unprofiled = accounts - riders
	}
	return inv
}
