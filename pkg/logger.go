package evaluation

type Logger interface {
	Info(message string, module string)
	Error(string)
}

type nopLogger struct{}

func (nopLogger) Info(message string, module string) {}
func (nopLogger) Error(string)                       {}

var logger Logger = nopLogger{}

func SetLogger(l Logger) {
	if l == nil {
		logger = nopLogger{}
		return
	}
	logger = l
}
