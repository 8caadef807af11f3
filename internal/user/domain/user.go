package domain

// User is the users/{uid} document as far as this service touches it. The
// complaint app owns the rest of the record; only the device token set is
// read and mutated here.
type User struct {
	UID       string   `firestore:"uid,omitempty"`
	FCMTokens []string `firestore:"fcmTokens,omitempty"`
}
