package obs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeLogsRunIDAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithRunID(context.Background(), "run-1")

	func() (err error) {
		defer Time(ctx, logger, "solve")(&err)
		return errors.New("boom")
	}()

	out := buf.String()
	assert.Contains(t, out, "operation failed")
	assert.Contains(t, out, "run_id=run-1")
	assert.Contains(t, out, "op=solve")
	assert.Contains(t, out, "err=boom")
}

func TestTimeLogsSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	func() (err error) {
		defer Time(context.Background(), logger, "search")(&err)
		return nil
	}()

	assert.Contains(t, buf.String(), "operation finished")
	assert.Equal(t, "", RunID(context.Background()))
}
