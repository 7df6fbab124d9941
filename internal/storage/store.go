package storage

import (
	"context"
)

// Store is the durable key→string store behind wishlist, reward, user and
// profile persistence. Implementations must report a missing key as
// (_, false, nil) rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const keyPrefix = "giftscape:"

func WishlistKey(owner string) string {
	return keyPrefix + "wishlist:" + owner
}

func RewardsKey(userID string) string {
	return keyPrefix + "rewards:" + userID
}

func UserKey(email string) string {
	return keyPrefix + "users:" + email
}

func ProfileImageKey(userID string) string {
	return keyPrefix + "profile_image:" + userID
}

func AddressBookKey(userID string) string {
	return keyPrefix + "addresses:" + userID
}

// SessionTokenKey holds the most recently issued auth token. The reward
// watcher polls it to notice logins and logouts that happen elsewhere.
func SessionTokenKey() string {
	return keyPrefix + "session:token"
}
