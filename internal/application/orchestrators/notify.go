package orchestrators

// Notifier is the outcome channel the UI layer injects to surface toasts or
// banners. Orchestrators call it on every settle; a nil Notifier is silent.
type Notifier interface {
	Success(operation, entityID, message string)
	Failure(operation, entityID string, err error)
}

func notifySuccess(n Notifier, operation, entityID, message string) {
	if n != nil {
		n.Success(operation, entityID, message)
	}
}

func notifyFailure(n Notifier, operation, entityID string, err error) {
	if n != nil {
		n.Failure(operation, entityID, err)
	}
}

// viewAlive reports whether the originating view still wants the result.
// A nil check means the caller did not wire teardown tracking.
func viewAlive(check func() bool) bool {
	return check == nil || check()
}
