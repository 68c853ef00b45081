package console

import (
	"XuBank/internal/adapters/audit"
	"XuBank/internal/core/ports"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockMenuHandler struct {
	mock.Mock
}

var _ ports.MenuHandler = (*MockMenuHandler)(nil)

func (m *MockMenuHandler) Option() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockMenuHandler) Title() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockMenuHandler) Handle(ctx context.Context, p ports.Prompter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) LogEvent(kind, message string) {
	m.Called(kind, message)
}

func (m *MockAuditSink) LogError(kind, message string, cause error) {
	m.Called(kind, message, cause)
}

func newHandler(option, title string) *MockMenuHandler {
	h := new(MockMenuHandler)
	h.On("Option").Return(option)
	h.On("Title").Return(title)
	return h
}

// --- Tests ---

func TestMenuRouter_Run_DispatchesAndExits(t *testing.T) {
	nopLogger := zerolog.Nop()
	router := NewMenuRouter(audit.Nop(), &nopLogger)

	deposit := newHandler("3", "Deposit")
	deposit.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()
	register := newHandler("1", "Register client")

	router.RegisterMenuHandler(deposit)
	router.RegisterMenuHandler(register)

	var out bytes.Buffer
	session := NewSession(strings.NewReader("3\n0\n"), &out)
	require.NoError(t, router.Run(t.Context(), session))

	deposit.AssertExpectations(t)
	register.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)

	text := out.String()
	assert.Less(t, strings.Index(text, "1 - Register client"), strings.Index(text, "3 - Deposit"))
	assert.Contains(t, text, "0 - Exit")
}

func TestMenuRouter_Run_InvalidOption(t *testing.T) {
	nopLogger := zerolog.Nop()
	router := NewMenuRouter(audit.Nop(), &nopLogger)

	var out bytes.Buffer
	session := NewSession(strings.NewReader("banana\n42\n"), &out)
	require.NoError(t, router.Run(t.Context(), session))

	assert.Equal(t, 2, strings.Count(out.String(), "Invalid option."))
}

func TestMenuRouter_Run_HandlerErrorIsReportedAndLoopContinues(t *testing.T) {
	nopLogger := zerolog.Nop()
	sink := new(MockAuditSink)
	router := NewMenuRouter(sink, &nopLogger)

	boom := errors.New("boom")
	failing := newHandler("6", "Custody report")
	failing.On("Handle", mock.Anything, mock.Anything).Return(boom).Twice()
	sink.On("LogError", "MENU_PROCESSING_ERROR", "Error while processing option: 6", boom).Twice()
	router.RegisterMenuHandler(failing)

	var out bytes.Buffer
	session := NewSession(strings.NewReader("6\n6\n0\n"), &out)
	require.NoError(t, router.Run(t.Context(), session))

	failing.AssertExpectations(t)
	sink.AssertExpectations(t)
	assert.Equal(t, 2, strings.Count(out.String(), "Internal error. Try again."))
}

func TestMenuRouter_Run_EOFInsideHandlerEndsSession(t *testing.T) {
	nopLogger := zerolog.Nop()
	router := NewMenuRouter(audit.Nop(), &nopLogger)

	h := newHandler("2", "Open account")
	h.On("Handle", mock.Anything, mock.Anything).Return(io.EOF).Once()
	router.RegisterMenuHandler(h)

	var out bytes.Buffer
	session := NewSession(strings.NewReader("2\n"), &out)
	assert.NoError(t, router.Run(t.Context(), session))
	h.AssertExpectations(t)
}

func TestMenuRouter_Run_CancelledContext(t *testing.T) {
	nopLogger := zerolog.Nop()
	router := NewMenuRouter(audit.Nop(), &nopLogger)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	session := NewSession(strings.NewReader("1\n"), io.Discard)
	assert.ErrorIs(t, router.Run(ctx, session), context.Canceled)
}

func TestSession_Ask(t *testing.T) {
	var out bytes.Buffer
	session := NewSession(strings.NewReader(" Ana Silva \r\nsecond\n"), &out)

	line, err := session.Ask(t.Context(), "Name: ")
	require.NoError(t, err)
	assert.Equal(t, " Ana Silva ", line)

	line, err = session.Ask(t.Context(), "Again: ")
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = session.Ask(t.Context(), "More: ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Name: Again: More: ", out.String())
	assert.NotEqual(t, [16]byte{}, [16]byte(session.ID))
}
