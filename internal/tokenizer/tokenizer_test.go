package tokenizer

import "testing"

// runeCounter counts runes so tests stay independent of any encoding data.
type runeCounter struct{}

func (runeCounter) Name() string { return "rune" }

func (runeCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

func TestCountBytes(t *testing.T) {
	testCases := []struct {
		name           string
		data           []byte
		expectedTokens int
		expectCounted  bool
	}{
		{name: "plain text", data: []byte("hello"), expectedTokens: 5, expectCounted: true},
		{name: "multibyte text", data: []byte("héllo"), expectedTokens: 5, expectCounted: true},
		{name: "empty data", data: nil, expectedTokens: 0, expectCounted: true},
		{name: "binary data", data: []byte{0x00, 0x01, 0x02}, expectCounted: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result, countError := CountBytes(runeCounter{}, testCase.data)
			if countError != nil {
				t.Fatalf("CountBytes returned error: %v", countError)
			}
			if result.Counted != testCase.expectCounted {
				t.Fatalf("Counted = %v, want %v", result.Counted, testCase.expectCounted)
			}
			if result.Counted && result.Tokens != testCase.expectedTokens {
				t.Fatalf("Tokens = %d, want %d", result.Tokens, testCase.expectedTokens)
			}
		})
	}
}

func TestCountBytesRequiresCounter(t *testing.T) {
	if _, countError := CountBytes(nil, []byte("hello")); countError == nil {
		t.Fatal("expected an error when no counter is supplied")
	}
}

func TestNewCounterResolvesKnownModel(t *testing.T) {
	counter, resolvedModel, builderError := NewCounter(Config{Model: "gpt-4o"})
	if builderError != nil {
		t.Skipf("tokenizer data unavailable: %v", builderError)
	}
	if counter == nil {
		t.Fatal("NewCounter returned a nil counter")
	}
	if resolvedModel != "gpt-4o" {
		t.Fatalf("resolved model = %q, want %q", resolvedModel, "gpt-4o")
	}
	tokenCount, countError := counter.CountString("hello world")
	if countError != nil {
		t.Fatalf("CountString returned error: %v", countError)
	}
	if tokenCount <= 0 {
		t.Fatalf("token count = %d, want a positive value", tokenCount)
	}
}

func TestNewCounterFallsBackForUnknownModel(t *testing.T) {
	counter, resolvedModel, builderError := NewCounter(Config{Model: "made-up-model"})
	if builderError != nil {
		t.Skipf("tokenizer data unavailable: %v", builderError)
	}
	if counter == nil {
		t.Fatal("NewCounter returned a nil counter")
	}
	if resolvedModel != defaultEncodingName {
		t.Fatalf("resolved model = %q, want fallback %q", resolvedModel, defaultEncodingName)
	}
}
