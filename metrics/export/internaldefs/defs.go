package internaldefs

import (
	goCred "github.com/MrEthical07/goCred"
)

// CounterDef binds an engine counter to its exported name and help text.
// Names are shared by every exporter so dashboards stay stable across
// backends.
type CounterDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported engine counter.
var CounterDefs = []CounterDef{
	{ID: goCred.MetricRegisterSuccess, Name: "gocred_register_success_total", Help: "Successful registrations."},
	{ID: goCred.MetricRegisterDuplicate, Name: "gocred_register_duplicate_total", Help: "Registrations rejected as duplicate username."},
	{ID: goCred.MetricLoginSuccess, Name: "gocred_login_success_total", Help: "Successful logins."},
	{ID: goCred.MetricLoginFailure, Name: "gocred_login_failure_total", Help: "Logins rejected as invalid credentials."},
	{ID: goCred.MetricTokenRejected, Name: "gocred_token_rejected_total", Help: "Bearer tokens that failed verification."},
	{ID: goCred.MetricSecretRotated, Name: "gocred_secret_rotated_total", Help: "Signing-secret rotations."},
	{ID: goCred.MetricUpdateSuccess, Name: "gocred_update_success_total", Help: "Successful credential updates."},
	{ID: goCred.MetricUpdateConflict, Name: "gocred_update_conflict_total", Help: "Renames rejected because the target username was taken."},
	{ID: goCred.MetricDeleteSuccess, Name: "gocred_delete_success_total", Help: "Account deletions."},
}
