package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForm_StartsOnFirstCheckinQuestion(t *testing.T) {
	f := NewForm()

	assert.Equal(t, ModeCheckin, f.Mode)
	assert.Equal(t, 0, f.Expanded)
	require.Len(t, f.Questions(), 3)
	assert.Equal(t, KeyAttention, f.Questions()[0].Key)
	assert.False(t, f.CanSave())
}

func TestForm_Toggle(t *testing.T) {
	f := NewForm()

	f.Toggle(0)
	assert.Equal(t, NoneExpanded, f.Expanded, "toggling the open question collapses it")

	f.Toggle(2)
	assert.Equal(t, 2, f.Expanded)

	f.Toggle(1)
	assert.Equal(t, 1, f.Expanded, "only one question is open at a time")

	f.Toggle(7)
	assert.Equal(t, 1, f.Expanded, "out of range index is ignored")
}

func TestForm_Next(t *testing.T) {
	f := NewForm()

	assert.False(t, f.Next(0), "blank answer cannot advance")
	assert.Equal(t, 0, f.Expanded)

	f.Set(KeyAttention, "   ")
	assert.False(t, f.Next(0), "whitespace is blank")

	f.Set(KeyAttention, "writing")
	assert.True(t, f.Next(0))
	assert.Equal(t, 1, f.Expanded)

	f.Set(KeyAgency, "ship it")
	assert.False(t, f.Next(2), "last question has no next")
}

func TestForm_CanSaveDependsOnFirstAnswerOnly(t *testing.T) {
	f := NewForm()
	f.Set(KeyObsession, "yes")
	assert.False(t, f.CanSave())

	f.Set(KeyAttention, "  \n")
	assert.False(t, f.CanSave())

	f.Set(KeyAttention, "go")
	assert.True(t, f.CanSave())
}

func TestForm_SwitchToCheckoutPrefills(t *testing.T) {
	f := NewForm()
	f.Set(KeyAttention, "old")
	f.Expanded = 2

	f.SwitchToCheckout(DailyLog{
		InAttention: "focus",
		OutTIL1:     "til",
		Reading:     "book",
		LinkDumps:   []LinkDump{{URL: "https://a.example"}, {URL: "https://b.example"}},
	})

	assert.Equal(t, ModeCheckout, f.Mode)
	assert.Equal(t, 0, f.Expanded)
	assert.Equal(t, "til", f.Answer(KeyTIL1))
	assert.Equal(t, "book", f.Answer(KeyReading))
	assert.Equal(t, "https://a.example\nhttps://b.example", f.Answer(KeyLinkDumps))
	assert.Empty(t, f.Answer(KeyAttention))
	assert.True(t, f.CanSave())
	assert.Equal(t, KeyTIL1, f.Questions()[0].Key)
}

func TestForm_ResponsesIsACopy(t *testing.T) {
	f := NewForm()
	f.Set(KeyAttention, "a")

	r := f.Responses()
	r[KeyAttention] = "changed"

	assert.Equal(t, "a", f.Answer(KeyAttention))
}

func TestParseLinks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []LinkDump
	}{
		{name: "empty", in: "", want: []LinkDump{}},
		{name: "blank lines dropped", in: "https://a\n\n  \nhttps://b\n", want: []LinkDump{{URL: "https://a"}, {URL: "https://b"}}},
		{name: "trimmed", in: "  https://a  \r\n", want: []LinkDump{{URL: "https://a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLinks(tt.in))
		})
	}
}

func TestPayloads(t *testing.T) {
	responses := map[string]string{
		KeyAttention: "a",
		KeyObsession: "o",
		KeyTIL1:      "t",
		KeyLinkDumps: "https://x\n\nhttps://y",
	}

	in := CheckinPayload(responses, "2026-10-16")
	assert.Equal(t, DailyLogCreate{LogDate: "2026-10-16", InAttention: "a", InObsession: "o"}, in)

	out := CheckoutPayload(responses)
	assert.Equal(t, "t", out.OutTIL1)
	assert.Empty(t, out.Reading)
	assert.Equal(t, []LinkDump{{URL: "https://x"}, {URL: "https://y"}}, out.LinkDumps)
}

func TestDailyLogUpdate_Empty(t *testing.T) {
	assert.True(t, DailyLogUpdate{}.Empty())
	r := "r"
	assert.False(t, DailyLogUpdate{Reading: &r}.Empty())
}

func TestDailyLog_Flags(t *testing.T) {
	now := Timestamp{Time: time.Now()}
	l := DailyLog{InAttention: "x", CheckoutTime: &now}
	assert.True(t, l.CheckedIn())
	assert.True(t, l.CheckedOut())
	assert.False(t, DailyLog{}.CheckedIn())
}
