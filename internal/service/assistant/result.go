package assistant

// ActionResult is one outcome of dispatching a message. A single message
// may produce several results, one per business domain it touched.
type ActionResult struct {
	Success              bool           `json:"success"`
	Message              string         `json:"message"`
	Data                 map[string]any `json:"data,omitempty"`
	Error                string         `json:"error,omitempty"`
	RequiresConfirmation bool           `json:"requires_confirmation,omitempty"`
	ConfirmationData     map[string]any `json:"confirmation_data,omitempty"`
}

func success(message string, data map[string]any) *ActionResult {
	return &ActionResult{Success: true, Message: message, Data: data}
}

// failure carries a textual error, never a raised one.
func failure(message, errText string) *ActionResult {
	return &ActionResult{Success: false, Message: message, Error: errText}
}

// clarify asks the actor a question instead of executing. Used when a
// required field could not be extracted from the text.
func clarify(question string) *ActionResult {
	return &ActionResult{Success: false, Message: question}
}
