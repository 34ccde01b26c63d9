package notify

import "go.uber.org/zap"

// Notifier is the user-visible notification sink. Services report the outcome
// of operations through it instead of returning presentation strings.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// ZapNotifier logs notifications through the global zap logger. The HTTP
// layer relays the same messages to clients; this keeps a server-side trace.
type ZapNotifier struct{}

func NewZapNotifier() *ZapNotifier {
	return &ZapNotifier{}
}

func (n *ZapNotifier) Success(msg string) {
	zap.L().Info(msg, zap.String("kind", "success"))
}

func (n *ZapNotifier) Info(msg string) {
	zap.L().Info(msg, zap.String("kind", "info"))
}

func (n *ZapNotifier) Error(msg string) {
	zap.L().Warn(msg, zap.String("kind", "error"))
}

// Recorder collects notifications for assertions in tests.
type Recorder struct {
	Successes []string
	Infos     []string
	Errors    []string
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Success(msg string) { r.Successes = append(r.Successes, msg) }
func (r *Recorder) Info(msg string)    { r.Infos = append(r.Infos, msg) }
func (r *Recorder) Error(msg string)   { r.Errors = append(r.Errors, msg) }
