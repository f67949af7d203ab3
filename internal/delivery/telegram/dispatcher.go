package telegram

import (
	"context"
	"runtime/debug"
	"sync"

	"go-jobmatch-bot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// HandleFunc processes a single update.
type HandleFunc func(ctx context.Context, upd tgbotapi.Update)

// Dispatcher fans updates out to a fixed set of workers. All updates of one
// user land on the same worker, so they are processed in arrival order and
// never concurrently.
type Dispatcher struct {
	shards []chan tgbotapi.Update
	handle HandleFunc
	wg     sync.WaitGroup
}

func NewDispatcher(workers, buffer int, handle HandleFunc) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{shards: make([]chan tgbotapi.Update, workers), handle: handle}
	for i := range d.shards {
		d.shards[i] = make(chan tgbotapi.Update, buffer)
	}
	return d
}

func (d *Dispatcher) Start(ctx context.Context) {
	for _, ch := range d.shards {
		d.wg.Add(1)
		go d.worker(ctx, ch)
	}
}

// Dispatch queues an update. It blocks while the user's shard is full and
// gives up when ctx is done.
func (d *Dispatcher) Dispatch(ctx context.Context, upd tgbotapi.Update) bool {
	ch := d.shards[d.shardOf(SenderID(upd))]
	select {
	case ch <- upd:
		return true
	case <-ctx.Done():
		return false
	}
}

// Stop closes the queues and waits for in-flight updates.
func (d *Dispatcher) Stop() {
	for _, ch := range d.shards {
		close(ch)
	}
	d.wg.Wait()
}

func (d *Dispatcher) shardOf(userID int64) int {
	return int(uint64(userID) % uint64(len(d.shards)))
}

func (d *Dispatcher) worker(ctx context.Context, ch <-chan tgbotapi.Update) {
	defer d.wg.Done()
	for upd := range ch {
		d.safeHandle(ctx, upd)
	}
}

func (d *Dispatcher) safeHandle(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Panic while handling update",
				zap.Int("update_id", upd.UpdateID),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()
	d.handle(ctx, upd)
}
