package domain

import "time"

// Store is a rateable storefront. Each store references exactly one owner
// (a user with RoleOwner); nothing currently prevents an owner from being
// assigned more than one store, in which case lookups return the first.
type Store struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   int       `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}
