package ui

import (
	"context"
	"log/slog"
)

// TeeEvents logs every event as a structured "hollow.event" record and
// forwards it unchanged. The returned channel closes after in does.
func TeeEvents(in <-chan Event, logger *slog.Logger) <-chan Event {
	out := make(chan Event, cap(in))
	go func() {
		defer close(out)
		for ev := range in {
			attrs := []slog.Attr{
				slog.String("type", ev.Type.String()),
				slog.String("phase", string(ev.Type.Phase())),
			}
			if ev.Path != "" {
				attrs = append(attrs, slog.String("path", ev.Path))
			}
			if ev.Size != 0 {
				attrs = append(attrs, slog.Int64("size", ev.Size))
			}
			if ev.Processed != 0 || ev.Total != 0 {
				attrs = append(attrs, slog.Int64("processed", ev.Processed), slog.Int64("total", ev.Total))
			}
			if ev.Error != nil {
				attrs = append(attrs, slog.String("error", ev.Error.Error()))
			}
			logger.LogAttrs(context.Background(), slog.LevelInfo, "hollow.event", attrs...)
			out <- ev
		}
	}()
	return out
}
