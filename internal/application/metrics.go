package application

import "expvar"

// counters exposed under "accounts" on /debug/vars
var stats = expvar.NewMap("accounts")

const (
	statRegistered    = "registered"
	statLogins        = "logins"
	statLoginFailures = "login_failures"
	statUpdated       = "updated"
	statDeleted       = "deleted"
	statAuthRejected  = "auth_rejected"
)

func count(name string) { stats.Add(name, 1) }
