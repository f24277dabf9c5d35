package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/lingua/internal/capability"
	"github.com/abhisek/lingua/internal/intent"
	"github.com/abhisek/lingua/internal/progress"
)

func human(text string) State {
	return State{Messages: []Message{{Role: RoleHuman, Content: text}}}
}

func reply(t *testing.T, s State) string {
	t.Helper()
	last, ok := s.Last()
	require.True(t, ok)
	require.Equal(t, RoleAI, last.Role)
	return last.Content
}

func cleanGrammar() grammarFunc {
	return func(context.Context, string) ([]capability.Correction, error) { return nil, nil }
}

func TestRun_EmptyStateGoesToConversationWithoutClassifier(t *testing.T) {
	router := &countingRouter{inner: intent.NewClassifier()}
	gen := &recorder{out: "Hallo!"}
	o := New(capability.Set{
		Generator: gen.fn(),
		ToEnglish: returns("Hello!"),
		ToBengali: returns("হ্যালো!"),
	}, nil, WithRouter(router))

	out := o.Run(context.Background(), "anna", State{})

	assert.Zero(t, router.calls)
	assert.Equal(t, intent.End, out.Next)
	require.Len(t, out.Messages, 1)
	assert.Equal(t, "Hallo!\nHello!\nহ্যালো!", reply(t, out))
	assert.Equal(t, "Respond in German at beginner level to: ", gen.last())
}

func TestRun_AppendsExactlyOneMessageAndKeepsInput(t *testing.T) {
	o := New(capability.Set{Grammar: cleanGrammar()}, nil)

	in := State{Messages: []Message{
		{Role: RoleHuman, Content: "Hallo"},
		{Role: RoleAI, Content: "Hallo!"},
		{Role: RoleHuman, Content: "grammar: Ich bin müde"},
	}}
	snapshot := append([]Message(nil), in.Messages...)

	out := o.Run(context.Background(), "anna", in)

	require.Len(t, out.Messages, 4)
	assert.Equal(t, snapshot, out.Messages[:3])
	assert.Equal(t, snapshot, in.Messages, "caller's slice must not change")
	assert.Equal(t, intent.End, out.Next)
}

func TestRun_EveryHandlerRepliesEvenWithNoCapabilities(t *testing.T) {
	o := New(capability.Set{}, nil)

	inputs := map[string]string{
		"check my grammar please":    "Error checking grammar: ",
		"what does the word Haus":    "Error looking up 'Haus': ",
		"pronounce Eichhörnchen":     "Error generating pronunciation: ",
		"translate to english: Haus": "Error translating to English: ",
		"translate to bengali: Haus": "Error translating to Bengali: ",
		"explain grammar: Ich bin":   "Error explaining grammar: ",
		"Wie geht's?":                "Error generating response: ",
	}
	for in, prefix := range inputs {
		t.Run(in, func(t *testing.T) {
			out := o.Run(context.Background(), "anna", human(in))
			r := reply(t, out)
			assert.True(t, strings.HasPrefix(r, prefix), "reply %q", r)
			assert.Contains(t, r, capability.ErrUnavailable.Error())
			assert.Equal(t, intent.End, out.Next)
		})
	}
}

func TestGrammar_NoErrorsRecordsCorrect(t *testing.T) {
	reg := progress.NewRegistry()
	o := New(capability.Set{Grammar: cleanGrammar()}, reg)

	out := o.Run(context.Background(), "anna", human("check my grammar please"))

	assert.Equal(t, "No grammar errors found!", reply(t, out))
	stats := reg.Stats(context.Background(), "anna")
	assert.Equal(t, uint64(1), stats.Correct)
	assert.Equal(t, uint64(1), stats.Total)
}

func TestGrammar_ErrorsFormattedAndRecordedIncorrect(t *testing.T) {
	reg := progress.NewRegistry()
	o := New(capability.Set{Grammar: grammarFunc(func(context.Context, string) ([]capability.Correction, error) {
		return []capability.Correction{
			{Rule: "DE_AGREEMENT", Message: "Use 'das Haus'."},
			{Rule: "VERB_POSITION", Message: "The verb goes second."},
		}, nil
	})}, reg)

	out := o.Run(context.Background(), "anna", human("grammar: Der Haus groß ist"))

	assert.Equal(t, "Error: DE_AGREEMENT - Use 'das Haus'.\nError: VERB_POSITION - The verb goes second.", reply(t, out))
	stats := reg.Stats(context.Background(), "anna")
	assert.Equal(t, uint64(0), stats.Correct)
	assert.Equal(t, uint64(1), stats.Total)
}

func TestGrammar_FailureRecordsNothing(t *testing.T) {
	reg := progress.NewRegistry()
	o := New(capability.Set{Grammar: grammarFunc(func(context.Context, string) ([]capability.Correction, error) {
		return nil, errors.New("checker offline")
	})}, reg)

	out := o.Run(context.Background(), "anna", human("grammar please"))

	assert.Equal(t, "Error checking grammar: checker offline", reply(t, out))
	assert.Zero(t, reg.Stats(context.Background(), "anna").Total)
}

func TestGrammar_ReceivesFullText(t *testing.T) {
	var got string
	o := New(capability.Set{Grammar: grammarFunc(func(_ context.Context, text string) ([]capability.Correction, error) {
		got = text
		return nil, nil
	})}, nil)

	o.Run(context.Background(), "anna", human("Grammar: Ich habe gegangen"))
	assert.Equal(t, "Grammar: Ich habe gegangen", got)
}

func TestVocabulary(t *testing.T) {
	dict := capability.ChainDictionary{capability.DefaultStaticDictionary()}
	o := New(capability.Set{Dictionary: dict}, nil)

	tests := []struct {
		in   string
		want string
	}{
		{"what does the word Haus", "Haus: house"},
		{"vocabulary: lernen?", "lernen: to learn"},
		{"word \"Auto\" !", "Auto: car"},
		{"what is the word Katze", "No definition found for 'Katze'. Try another word!"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, reply(t, o.Run(context.Background(), "anna", human(tt.in))))
		})
	}
}

func TestVocabulary_LookupError(t *testing.T) {
	o := New(capability.Set{Dictionary: fails(errors.New("timeout"))}, nil)
	out := o.Run(context.Background(), "anna", human("word Baum"))
	assert.Equal(t, "Error looking up 'Baum': timeout", reply(t, out))
}

func TestPronunciation(t *testing.T) {
	speaker := &recorder{out: "/static/pronunciation-1.mp3"}
	o := New(capability.Set{Speaker: speaker.fn()}, nil)

	out := o.Run(context.Background(), "anna", human("pronounce Eichhörnchen"))

	assert.Equal(t, "Pronunciation audio generated: /static/pronunciation-1.mp3", reply(t, out))
	assert.Equal(t, "pronounce Eichhörnchen", speaker.last())
}

func TestPronunciation_FailureYieldsErrorReply(t *testing.T) {
	o := New(capability.Set{Speaker: fails(errors.New("quota exceeded"))}, nil)
	out := o.Run(context.Background(), "anna", human("pronunciation of Brötchen"))
	assert.Equal(t, "Error generating pronunciation: quota exceeded", reply(t, out))
	assert.Equal(t, intent.End, out.Next)
}

func TestTranslate_StripsTrigger(t *testing.T) {
	en := &recorder{out: "I am tired."}
	bn := &recorder{out: "আমি ক্লান্ত।"}
	o := New(capability.Set{ToEnglish: en.fn(), ToBengali: bn.fn()}, nil)

	out := o.Run(context.Background(), "anna", human("Translate to English: Ich bin müde."))
	assert.Equal(t, "I am tired.", reply(t, out))
	assert.Equal(t, "Ich bin müde.", en.last())

	out = o.Run(context.Background(), "anna", human("translate into bengali - Ich bin müde."))
	assert.Equal(t, "আমি ক্লান্ত।", reply(t, out))
	assert.Equal(t, "Ich bin müde.", bn.last())

	o.Run(context.Background(), "anna", human("Ich bin müde in english?"))
	assert.Equal(t, "Ich bin müde", en.last())
}

func TestTranslate_Failure(t *testing.T) {
	o := New(capability.Set{ToBengali: fails(errors.New("rate limited"))}, nil)
	out := o.Run(context.Background(), "anna", human("in bangla: Danke"))
	assert.Equal(t, "Error translating to Bengali: rate limited", reply(t, out))
}

func TestGrammarExplain(t *testing.T) {
	ex := &recorder{out: "English: dative\nBengali: ডেটিভ"}
	o := New(capability.Set{Explainer: ex.fn(), Grammar: cleanGrammar()}, nil)

	out := o.Run(context.Background(), "anna", human("explain grammar: Ich fahre mit dem Bus"))

	assert.Equal(t, "English: dative\nBengali: ডেটিভ", reply(t, out))
	assert.Equal(t, "Ich fahre mit dem Bus", ex.last())
	assert.Zero(t, o.Progress().Stats(context.Background(), "anna").Total, "explaining is not judged")
}

func TestConversation_ThreeSegmentsAtLearnerLevel(t *testing.T) {
	reg := progress.NewRegistry()
	for range 5 {
		reg.Record(context.Background(), "anna", true)
	}
	gen := &recorder{out: "Sehr gut!"}
	o := New(capability.Set{
		Generator: gen.fn(),
		ToEnglish: returns("Very good!"),
		ToBengali: returns("খুব ভালো!"),
	}, reg, WithLanguage("Spanish"))

	out := o.Run(context.Background(), "anna", human("Ich habe heute Deutsch gelernt"))

	segments := strings.Split(reply(t, out), "\n")
	assert.Equal(t, []string{"Sehr gut!", "Very good!", "খুব ভালো!"}, segments)
	assert.Equal(t, "Respond in Spanish at advanced level to: Ich habe heute Deutsch gelernt", gen.last())
}

func TestConversation_TranslationFailureDegradesOneSegment(t *testing.T) {
	o := New(capability.Set{
		Generator: returns("Hallo!"),
		ToEnglish: fails(errors.New("down")),
		ToBengali: returns("হ্যালো!"),
	}, nil)

	segments := strings.Split(reply(t, o.Run(context.Background(), "anna", human("Hallo"))), "\n")
	assert.Equal(t, []string{"Hallo!", "Error translating to English: down", "হ্যালো!"}, segments)
}

func TestConversation_GenerationFailureIsSingleSegment(t *testing.T) {
	o := New(capability.Set{
		Generator: fails(errors.New("model overloaded")),
		ToEnglish: returns("x"),
		ToBengali: returns("y"),
	}, nil)

	r := reply(t, o.Run(context.Background(), "anna", human("Hallo")))
	assert.Equal(t, "Error generating response: model overloaded", r)
}

func TestCapabilityTimeout(t *testing.T) {
	slow := textFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	o := New(capability.Set{Speaker: slow}, nil, WithCapabilityTimeout(10*time.Millisecond))

	r := reply(t, o.Run(context.Background(), "anna", human("pronounce Haus")))
	assert.Equal(t, "Error generating pronunciation: "+context.DeadlineExceeded.Error(), r)
}

func TestCapabilityPanicBecomesErrorReply(t *testing.T) {
	o := New(capability.Set{Dictionary: textFunc(func(context.Context, string) (string, error) {
		panic("corrupt index")
	})}, nil)

	r := reply(t, o.Run(context.Background(), "anna", human("word Haus")))
	assert.True(t, strings.HasPrefix(r, "Error looking up 'Haus': "))
	assert.Contains(t, r, "corrupt index")
}

func TestLearnersHaveSeparateProgress(t *testing.T) {
	reg := progress.NewRegistry()
	bad := grammarFunc(func(context.Context, string) ([]capability.Correction, error) {
		return []capability.Correction{{Rule: "X", Message: "y"}}, nil
	})
	good := New(capability.Set{Grammar: cleanGrammar()}, reg)
	poor := New(capability.Set{Grammar: bad}, reg)

	for range 3 {
		good.Run(context.Background(), "anna", human("grammar"))
		poor.Run(context.Background(), "ben", human("grammar"))
	}

	assert.Equal(t, progress.LevelAdvanced, reg.Level(context.Background(), "anna"))
	assert.Equal(t, progress.LevelBeginner, reg.Level(context.Background(), "ben"))
}

func TestProcessTurn(t *testing.T) {
	o := New(capability.Set{Grammar: cleanGrammar()}, nil)

	turn, err := o.ProcessTurn(context.Background(), "", "check my grammar please")
	require.NoError(t, err)
	assert.Equal(t, "No grammar errors found!", turn.Reply)
	assert.Equal(t, intent.Grammar, turn.Handler)
	assert.Equal(t, progress.LevelAdvanced, turn.Level)
	assert.False(t, turn.Timestamp.IsZero())
	assert.Equal(t, uint64(1), o.Progress().Stats(context.Background(), progress.DefaultLearner).Total)

	_, err = o.ProcessTurn(context.Background(), "anna", "  \n ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestRun_UnroutableHandlerFallsBackToConversation(t *testing.T) {
	for _, h := range []intent.Handler{intent.End, "spelling", ""} {
		t.Run(string(h), func(t *testing.T) {
			o := New(capability.Set{
				Generator: returns("Hallo!"),
				ToEnglish: returns("Hello!"),
				ToBengali: returns("হ্যালো!"),
			}, nil, WithRouter(fixedRouter(h)))

			out := o.Run(context.Background(), "anna", human("Guten Tag"))
			assert.Equal(t, "Hallo!\nHello!\nহ্যালো!", reply(t, out))
			assert.Equal(t, intent.End, out.Next)
		})
	}
}

func TestCapabilityFailureIsLoggedWithElapsed(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	o := New(capability.Set{
		Speaker: textFunc(func(context.Context, string) (string, error) {
			time.Sleep(5 * time.Millisecond)
			return "", errors.New("quota exceeded")
		}),
	}, nil, WithLogger(zap.New(core)))

	o.Run(context.Background(), "anna", human("pronounce Brötchen"))

	entries := logs.FilterMessage("capability failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "text-to-speech", fields["capability"])
	assert.Equal(t, "anna", fields["learner"])
	elapsed, ok := fields["elapsed"].(time.Duration)
	require.True(t, ok, "elapsed should be a duration, got %T", fields["elapsed"])
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
}
