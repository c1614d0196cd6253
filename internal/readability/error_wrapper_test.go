package readability

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorRendering(t *testing.T) {
	cause := errors.New("unexpected EOF")

	assert.Equal(t, "[parse:ExtractFromHTML] failed to parse HTML document: unexpected EOF",
		WrapParseError(cause, "ExtractFromHTML", "failed to parse HTML document").Error())
	assert.Equal(t, "[validation:Parse] unexpected EOF",
		WrapValidationError(cause, "Parse", "").Error())
	assert.NoError(t, WrapError(nil, ParseError, "Parse", "ignored"))
}

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		check    func(error) bool
	}{
		{"parse", WrapParseError(ErrNoDocument, "f", ""), ParseError, IsParseError},
		{"extraction", WrapExtractionError(ErrNoContent, "f", "no article"), ExtractionError, IsExtractionError},
		{"validation", WrapValidationError(ErrDocumentLarge, "f", ""), ValidationError, IsValidationError},
		{"timeout", WrapTimeoutError(ErrTimeout, "f", "took too long"), TimeoutError, IsTimeoutError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, IsErrorType(tt.err, tt.wantType))
			assert.False(t, IsErrorType(tt.err, MetadataError))

			var typed *Error
			require.True(t, errors.As(tt.err, &typed))
			assert.Equal(t, tt.wantType, typed.Type)
			assert.Equal(t, "f", typed.Func)
		})
	}
}

func TestErrorTypeSurvivesWrapping(t *testing.T) {
	inner := WrapValidationError(ErrDocumentLarge, "Parse", "")
	err := WrapExtractionError(fmt.Errorf("%w: 12 elements", inner), "ExtractFromNode", "failed to extract article")

	assert.True(t, IsExtractionError(err))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsTimeoutError(err))
	assert.ErrorIs(t, err, ErrDocumentLarge)
}

func TestErrorTypeIgnoresMessageText(t *testing.T) {
	err := errors.New("[timeout:Parse] looks typed but is not")
	assert.False(t, IsTimeoutError(err))
	assert.False(t, IsErrorType(nil, TimeoutError))
}

func TestParseErrorsAreTyped(t *testing.T) {
	_, err := NewFromNode(nil, nil).Parse()
	require.ErrorIs(t, err, ErrNoDocument)
	assert.True(t, IsValidationError(err))
	assert.False(t, IsParseError(err))
}
