// ABOUTME: User record for an account member, merged in place on refresh so
// ABOUTME: external references to a User instance survive Account.Pull.
package monday

// User is an account member. Unlike tags, users are updated in place on every
// pull: a caller holding a *User keeps a valid reference across refreshes.
type User struct {
	id    int
	name  string
	email string

	// LinkedAccount is an unmanaged extension slot for callers that need to
	// associate the monday user with a user in their own system. The library
	// never reads or writes it.
	LinkedAccount any
}

// userInfo is the remote payload for one user. Optional fields let the merge
// distinguish "absent from response" from "present but empty".
type userInfo struct {
	ID    int              `json:"id"`
	Name  Optional[string] `json:"name"`
	Email Optional[string] `json:"email"`
}

func newUser(info userInfo) *User {
	u := &User{id: info.ID}
	u.updateWithRemoteData(info)
	return u
}

// updateWithRemoteData merges remote fields into the user in place. A field
// is applied only when the response carried it.
func (u *User) updateWithRemoteData(info userInfo) {
	if info.ID != 0 {
		u.id = info.ID
	}
	if v, ok := info.Name.Get(); ok {
		u.name = v
	}
	if v, ok := info.Email.Get(); ok {
		u.email = v
	}
}

func (u *User) ID() int       { return u.id }
func (u *User) Name() string  { return u.name }
func (u *User) Email() string { return u.email }

// UserSnapshot is the plain-record projection of a User.
type UserSnapshot struct {
	ID            int    `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Email         string `json:"email" yaml:"email"`
	LinkedAccount any    `json:"linkedAccount,omitempty" yaml:"linkedAccount,omitempty"`
}

// Snapshot returns a one-way plain-record projection of the user.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{ID: u.id, Name: u.name, Email: u.email, LinkedAccount: u.LinkedAccount}
}
