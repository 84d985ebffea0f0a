package types

// SelectRequest is the body of POST /menu/select.
type SelectRequest struct {
	// Menu option to toggle.
	// example: resnet18
	Option string `json:"option" example:"resnet18"`
}

// MenuView is the derived menu state a client renders.
type MenuView struct {
	// Checked options in display order.
	// example: ["classifier","resnet18","compute_shader","fp32"]
	Checked                  []string `json:"checked"`
	ClassifierChoicesVisible bool     `json:"classifier_choices_visible"`
	StyleChoicesVisible      bool     `json:"style_choices_visible"`
	ShaderChoiceVisible      bool     `json:"shader_choice_visible"`
	FragmentShaderEnabled    bool     `json:"fragment_shader_enabled"`
	ConcreteModelSelected    bool     `json:"concrete_model_selected"`
	RunEnabled               bool     `json:"run_enabled"`
}

// SelectResponse is returned by POST /menu/select and POST /menu/run.
type SelectResponse struct {
	Handled bool `json:"handled"`
	// True when the selection committed the configuration.
	Ran bool `json:"ran"`
	// True when the client should keep the menu open.
	KeepOpen bool     `json:"keep_open"`
	Menu     MenuView `json:"menu"`
}

// ConfigResponse is the committed configuration returned by GET /config.
type ConfigResponse struct {
	Denoiser         string `json:"denoiser" example:"none"`
	DenoiserShader   string `json:"denoiser_shader" example:"fragment_shader"`
	Classifier       string `json:"classifier" example:"resnet18"`
	ClassifierShader string `json:"classifier_shader" example:"compute_shader"`
	Detection        string `json:"detection" example:"none"`
	DetectionShader  string `json:"detection_shader" example:"fragment_shader"`
	StyleTransfer    string `json:"style_transfer" example:"none"`
	Precision        string `json:"precision" example:"fp16"`
	ClassifierIndex  int    `json:"classifier_index" example:"0"`
	// One of unchanged, pending_apply, applied.
	// example: pending_apply
	ChangeState string `json:"change_state" example:"pending_apply"`
	Revision    uint64 `json:"revision" example:"3"`
}

// ProgressResponse drives the client's loading indicator.
type ProgressResponse struct {
	// True while the backend has not applied the last change.
	Loading bool `json:"loading"`
	// Change state before this call.
	// example: applied
	State string `json:"state" example:"applied"`
	// True when this call acknowledged an applied change and cleared the flag.
	Dismissed bool `json:"dismissed"`
}

// ClassifierResponse is returned by GET /classifier.
type ClassifierResponse struct {
	// example: cat
	Label string `json:"label" example:"cat"`
	// example: 4
	Index int `json:"index" example:"4"`
}

// ClassifierIndexRequest is the body of POST /classifier.
type ClassifierIndexRequest struct {
	// Latest classifier output index.
	// example: 4
	Index *int `json:"index" example:"4"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Change state of the committed configuration.
	// example: unchanged
	ChangeState string `json:"change_state" example:"unchanged"`
	// Active category, empty when no model runs.
	// example: classifier
	ActiveCategory string `json:"active_category,omitempty" example:"classifier"`
	Revision       uint64 `json:"revision" example:"3"`
	// Name of the inference backend.
	// example: simulated
	Backend string `json:"backend" example:"simulated"`
	// True while the backend is reconfiguring.
	Applying bool `json:"applying"`
	// Operation id of the last apply.
	LastOpID string `json:"last_op_id,omitempty"`
	// Last apply error, if the last apply failed.
	LastError string `json:"last_error,omitempty"`
	// example: 4
	AppliesTotal uint64 `json:"applies_total" example:"4"`
	// example: 0
	FailuresTotal uint64 `json:"failures_total" example:"0"`
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// Event is one journal entry returned by GET /events.
type Event struct {
	ID int64 `json:"id" example:"12"`
	// Reconciler operation id.
	OpID string `json:"op_id,omitempty" example:"6f1c2d7e-0d7b-4b7e-9a3a-2a9c1b1f0e55"`
	// One of commit, apply_start, apply_done, apply_error, apply_stale.
	// example: apply_done
	Name     string         `json:"name" example:"apply_done"`
	Revision uint64         `json:"revision" example:"3"`
	Fields   map[string]any `json:"fields,omitempty"`
	// Milliseconds since the Unix epoch.
	AtUnixMs int64 `json:"at_unix_ms" example:"1700000000000"`
}

// EventsResponse is returned by GET /events.
type EventsResponse struct {
	Events []Event `json:"events"`
}

// ModelsResponse is returned by GET /models.
type ModelsResponse struct {
	Models []Model `json:"models"`
}
