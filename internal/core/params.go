package core

// ParamType enumerates supported parameter value kinds. Solver tunables are
// all numeric, so only int and float kinds exist.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter is one solver tunable rendered for display, value pre-formatted
// as a string.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the solver's current tunables for the HUD and
// diagnostic output.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterControl describes a tunable the HUD may adjust live. Step and
// bounds are interpreted based on the parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter applies HUD updates to integer tunables. The return
// value reports whether the key was known and the value accepted.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatParameterSetter applies HUD updates to floating-point tunables. The
// return value reports whether the key was known and the value accepted.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}
