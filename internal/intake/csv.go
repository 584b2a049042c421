package intake

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/exit-readiness/internal/model"
)

// StreamCSV reads submissions from r and sends them to a channel. The first
// row must be a header. Errors are sent on the error channel. Both channels
// are closed when processing completes.
func StreamCSV(ctx context.Context, r io.Reader) (<-chan model.Submission, <-chan error) {
	subCh := make(chan model.Submission, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(subCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		header, err := reader.Read()
		if err == io.EOF {
			errCh <- eris.New("intake: csv is empty")
			return
		}
		if err != nil {
			errCh <- eris.Wrap(err, "intake: read csv header")
			return
		}
		cols, err := parseHeader(header)
		if err != nil {
			errCh <- err
			return
		}

		line := 0
		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "intake: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrapf(err, "intake: read csv row %d", line+1)
				return
			}
			line++

			sub, ok := cols.submission(record, line)
			if !ok {
				continue
			}
			select {
			case subCh <- sub:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "intake: context cancelled")
				return
			}
		}
	}()

	return subCh, errCh
}

// ReadCSV reads all submissions from r.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.Submission, error) {
	subCh, errCh := StreamCSV(ctx, r)

	var subs []model.Submission
	for sub := range subCh {
		subs = append(subs, sub)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	zap.L().Debug("intake: read csv", zap.Int("submissions", len(subs)))
	return subs, nil
}
