package notifier

import "context"

// WorkerNotifier pushes a message to one worker's live session.
// A worker without a session is not an error.
type WorkerNotifier interface {
	NotifyWorker(ctx context.Context, worker string, event any) error
}
