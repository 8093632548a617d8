package extract

// Result is the normalized record produced for every processed file. Exactly
// one of Content (with Type) or Error is populated; Metadata is never nil.
type Result struct {
	Success  bool                   `json:"success"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
	Type     string                 `json:"type,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

func ok(content, fileType string, metadata map[string]interface{}) Result {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return Result{
		Success:  true,
		Content:  content,
		Metadata: metadata,
		Type:     fileType,
	}
}

func fail(err error) Result {
	return failMsg(err.Error())
}

func failMsg(msg string) Result {
	return Result{
		Success:  false,
		Metadata: map[string]interface{}{},
		Error:    msg,
	}
}
