package prompt_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/natdeps/internal/adapters/prompt"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "yes\n", want: true},
		{name: "short yes", input: "y\n", want: true},
		{name: "upper case", input: "  Y \n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty line", input: "\n", want: false},
		{name: "anything else", input: "sure\n", want: false},
		{name: "eof", input: "", want: false},
		{name: "answer without newline", input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			var out bytes.Buffer
			p := prompt.New(strings.NewReader(tt.input), &out, mocks.NewMockLogger(ctrl))

			got, err := p.Confirm(t.Context(), "Proceed?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(out.String(), "Proceed? [y/N] "))
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestPrompter_Confirm_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := prompt.New(failingReader{}, io.Discard, mocks.NewMockLogger(ctrl))

	ok, err := p.Confirm(t.Context(), "Proceed?")
	require.ErrorIs(t, err, domain.ErrConfirmationFailed)
	assert.False(t, ok)
}

func TestPrompter_Confirm_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })
	p := prompt.New(r, io.Discard, mocks.NewMockLogger(ctrl))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	ok, err := p.Confirm(ctx, "Proceed?")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestPrompter_Confirm_NonInteractive(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	_, err = f.WriteString("y\n")
	require.NoError(t, err)
	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	var out bytes.Buffer
	ok, err := prompt.New(f, &out, mockLogger).Confirm(t.Context(), "Proceed?")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}
