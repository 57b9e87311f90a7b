package uploader

// FailurePolicy decides whether a failure of a given kind aborts the run.
type FailurePolicy int

const (
	// HardFail returns the error and stops the run.
	HardFail FailurePolicy = iota
	// SoftFail logs a warning and carries on with a degraded result.
	SoftFail
)

func (p FailurePolicy) String() string {
	switch p {
	case HardFail:
		return "hard-fail"
	case SoftFail:
		return "soft-fail"
	}
	return "unknown"
}

// ErrorKind classifies the failures the upload flow can hit.
type ErrorKind string

const (
	// KindAmbiguity is a name matching more than one remote entry.
	KindAmbiguity ErrorKind = "ambiguity"
	// KindRemote is any error returned by the remote store.
	KindRemote ErrorKind = "remote"
	// KindEnumeration is a failure to list a local directory.
	KindEnumeration ErrorKind = "enumeration"
)

// PolicyFor returns the policy applied to failures of the given kind.
// Ambiguity and remote failures are always fatal; only enumeration failures
// follow the configured policy.
func (u *Uploader) PolicyFor(kind ErrorKind) FailurePolicy {
	if kind == KindEnumeration {
		return u.enumerationPolicy
	}
	return HardFail
}
