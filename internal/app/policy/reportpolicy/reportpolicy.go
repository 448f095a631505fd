// internal/app/policy/reportpolicy.go
package reportpolicy

import (
	"github.com/dalemusser/pindrop/internal/app/system/auth"
)

// CanCreate reports whether the caller may file a report. Any
// authenticated user can; visibility of the reported content is
// deliberately not required, so users can report things surfaced to them
// out of band.
func CanCreate(caller *auth.Identity) bool {
	return caller != nil
}

// CanModerate reports whether the caller may list reports or change their
// status. Moderation is application-admin only.
func CanModerate(caller *auth.Identity) bool {
	return caller != nil && caller.IsAdmin()
}
