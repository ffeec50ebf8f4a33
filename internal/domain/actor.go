package domain

// ActorRole distinguishes the two authenticated caller kinds. The engine
// trusts the caller's identity claim and only authorizes actions on
// resources the actor owns.
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleCoach    ActorRole = "coach"
)
