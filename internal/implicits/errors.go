package implicits

// ConfigError reports an invalid implicit declaration: duplicate or
// unmatched selectors, or a selected argument that cannot be displayed.
// It aborts the declaring command only.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// Anomaly reports an internal invariant violation. It is never expected
// on correct input and is not recoverable; callers surface it as a
// defect, not as a user error.
type Anomaly struct {
	Msg string
}

func (a *Anomaly) Error() string { return "anomaly: " + a.Msg }
