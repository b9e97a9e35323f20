package logger

// NopLogger discards everything. Used in tests and as a safe default before
// configuration is loaded.
type NopLogger struct{}

func NewNop() *NopLogger { return &NopLogger{} }

func (NopLogger) Debug(component, message string, fields map[string]interface{})   {}
func (NopLogger) Info(component, message string, fields map[string]interface{})    {}
func (NopLogger) Warning(component, message string, fields map[string]interface{}) {}
func (NopLogger) Error(component string, err error, fields map[string]interface{}) {}
