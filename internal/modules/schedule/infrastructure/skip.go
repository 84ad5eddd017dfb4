package infrastructure

import "tvGuideBff/internal/modules/schedule/application/port"

func recordSkip(recorder port.SkipRecorder, parser string) {
	if recorder != nil {
		recorder.SkippedItem(parser)
	}
}
