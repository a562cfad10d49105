package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/outings/internal/app"
	"github.com/alexanderramin/outings/internal/domain"
	"github.com/alexanderramin/outings/internal/intelligence"
	"github.com/alexanderramin/outings/internal/preference"
	"github.com/alexanderramin/outings/internal/repository"
	"github.com/alexanderramin/outings/internal/service"
	"github.com/alexanderramin/outings/internal/taxonomy"
	"github.com/alexanderramin/outings/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testToday is a Tuesday.
var testToday = testutil.Date(2025, 6, 10)

// testApp wires real services over an in-memory store and a fake provider.
func testApp(t *testing.T, replies ...testutil.ProviderReply) (*App, *testutil.FakeProvider) {
	t.Helper()
	vocab := taxonomy.MustDefaultVocabulary()
	engine := preference.NewEngine(context.Background(), vocab,
		preference.NewStore(repository.NewMemoryPreferenceRepo(), nil),
		preference.WithClock(testutil.FixedClock(testToday)))

	provider := testutil.NewFakeProvider(replies...)
	fetcher := intelligence.NewRecommendationService(provider,
		intelligence.WithClock(testutil.FixedClock(testToday)),
		intelligence.WithSleeper(func(context.Context, time.Duration) error { return nil }),
	)

	return &App{
		Recommend: service.NewRecommendService(fetcher, engine),
		Feedback:  service.NewFeedbackService(engine),
		Vocab:     vocab,
		Now:       testutil.FixedClock(testToday),
		AskReaction: func(app.RecommendedActivity, []string) (ReactionAnswer, error) {
			t.Fatal("unexpected reaction prompt")
			return ReactionAnswer{}, nil
		},
	}, provider
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// scriptedAnswers replays answers in order and records what it was asked.
type scriptedAnswers struct {
	answers []ReactionAnswer
	asked   []string
	reasons [][]string
}

func (s *scriptedAnswers) ask(a app.RecommendedActivity, reasons []string) (ReactionAnswer, error) {
	s.asked = append(s.asked, a.Title)
	s.reasons = append(s.reasons, reasons)
	if len(s.answers) == 0 {
		return ReactionAnswer{Stop: true}, nil
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return next, nil
}

// --- search ---

func TestSearch_PrintsRankedResults(t *testing.T) {
	a, provider := testApp(t, testutil.ProviderReply{Text: testutil.FiveActivitiesJSON})

	out, err := executeCmd(t, a, "search", "--city", "Chicago", "--ages", "4, 7")
	require.NoError(t, err)

	assert.Contains(t, out, "Lion Feeding - Sat 10am")
	assert.Contains(t, out, "Nature Trail Walk")
	assert.Contains(t, out, "#5")
	assert.NotContains(t, out, "<cite")
	assert.Contains(t, provider.LastPrompt(), "Saturday, June 14, 2025, afternoon", "defaults to next Saturday")
}

func TestSearch_AvailabilityOverridesDate(t *testing.T) {
	a, provider := testApp(t, testutil.ProviderReply{Text: testutil.FiveActivitiesJSON})

	_, err := executeCmd(t, a, "search", "--city", "Chicago", "--ages", "4",
		"--date", "2025-06-21", "--availability", "Sunday morning")
	require.NoError(t, err)

	assert.Contains(t, provider.LastPrompt(), "Sunday morning")
	assert.NotContains(t, provider.LastPrompt(), "June 21")
}

func TestSearch_RequiresCityAndAges(t *testing.T) {
	a, provider := testApp(t)

	_, err := executeCmd(t, a, "search", "--ages", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "city" not set`)
	assert.Equal(t, 0, provider.Calls())
}

func TestSearch_ProviderErrorIsRecommendError(t *testing.T) {
	a, _ := testApp(t, testutil.ProviderReply{Text: "I could not find any events for that date."})

	_, err := executeCmd(t, a, "search", "--city", "Nowhere", "--ages", "4")
	require.Error(t, err)

	var re *app.RecommendError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, app.ErrNoResults, re.Code)
	assert.Contains(t, FormatError(err), "Try a date closer to today, or a larger city.")
}

func TestSearch_ReactStoresAnswersUntilStop(t *testing.T) {
	a, _ := testApp(t, testutil.ProviderReply{Text: testutil.FiveActivitiesJSON})
	script := &scriptedAnswers{answers: []ReactionAnswer{
		{Value: domain.ReactionUp},
		{},
		{Value: domain.ReactionDown},
		{Stop: true},
	}}
	a.AskReaction = script.ask

	out, err := executeCmd(t, a, "search", "--city", "Chicago", "--ages", "4", "--react")
	require.NoError(t, err)

	assert.Len(t, script.asked, 4)
	assert.Contains(t, out, "Saved 2 reactions.")

	view := a.Feedback.Preferences(context.Background())
	require.Len(t, view.Reactions, 2)
	assert.Equal(t, "Lion Feeding - Sat 10am", view.Reactions[0].Title)
	assert.Equal(t, domain.ReactionUp, view.Reactions[0].Value)
	assert.Equal(t, "Spring Carnival", view.Reactions[1].Title)
	assert.Equal(t, domain.ReactionDown, view.Reactions[1].Value)
	assert.Nil(t, script.reasons[0], "activity searches do not offer reasons")
}

func TestSearch_DiningReactOffersReasons(t *testing.T) {
	a, _ := testApp(t, testutil.ProviderReply{Text: testutil.FiveActivitiesJSON})
	script := &scriptedAnswers{answers: []ReactionAnswer{
		{Value: domain.ReactionUp, Reasons: []string{"menu"}},
	}}
	a.AskReaction = script.ask

	_, err := executeCmd(t, a, "search", "--city", "Chicago", "--ages", "4", "--dining", "--prefs", "Thai", "--react")
	require.NoError(t, err)

	require.NotEmpty(t, script.reasons)
	assert.Equal(t, a.Vocab.Reasons(), script.reasons[0])

	view := a.Feedback.Preferences(context.Background())
	require.Len(t, view.Reactions, 1)
	assert.Equal(t, []string{"menu"}, view.Reactions[0].Categories)
}

func TestSearch_PromptErrorAborts(t *testing.T) {
	a, _ := testApp(t, testutil.ProviderReply{Text: testutil.FiveActivitiesJSON})
	a.AskReaction = func(app.RecommendedActivity, []string) (ReactionAnswer, error) {
		return ReactionAnswer{}, errors.New("user aborted")
	}

	_, err := executeCmd(t, a, "search", "--city", "Chicago", "--ages", "4", "--react")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user aborted")
}

// --- prompt ---

func TestPrompt_PrintsWithoutCallingProvider(t *testing.T) {
	a, provider := testApp(t)

	out, err := executeCmd(t, a, "prompt", "--city", "Chicago", "--ages", "4, 7", "--distance", "15")
	require.NoError(t, err)

	assert.Contains(t, out, "Chicago")
	assert.Contains(t, out, "15 miles")
	assert.Equal(t, 0, provider.Calls())
}

func TestPrompt_ContextFlagReplacesSummary(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "prompt", "--city", "Chicago", "--ages", "4", "--context", "LIKES TRAINS")
	require.NoError(t, err)
	assert.Contains(t, out, "LIKES TRAINS")
}

// --- react ---

func TestReact_ThumbsUpStoresInferredCategories(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "react", "--title", "Petting Zoo", "--description", "Feed goats at the zoo.", "--up")
	require.NoError(t, err)
	assert.Contains(t, out, "Liked")
	assert.Contains(t, out, "1 reactions stored")

	view := a.Feedback.Preferences(context.Background())
	require.Len(t, view.Reactions, 1)
	assert.Contains(t, view.Reactions[0].Categories, "zoo")
}

func TestReact_UpAndDownAreExclusive(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "react", "--title", "X", "--up", "--down")
	require.Error(t, err)
}

func TestReact_RequiresDirection(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "react", "--title", "X")
	require.Error(t, err)
}

func TestReact_UnknownReasonIsValidationError(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "react", "--title", "El Sol", "--up", "--reason", "parking")
	require.Error(t, err)

	var re *app.RecommendError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, app.ErrValidation, re.Code)
	assert.Empty(t, a.Feedback.Preferences(context.Background()).Reactions)
}

// --- prefs ---

func TestPrefsShow_EmptyAndPopulated(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No reactions yet")

	for _, title := range []string{"Petting Zoo", "Zoo Lights"} {
		_, err := executeCmd(t, a, "react", "--title", title, "--description", "Animals at the zoo.", "--up")
		require.NoError(t, err)
	}

	out, err = executeCmd(t, a, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Family Preference History")
	assert.Contains(t, out, "Liked categories")
}

func TestPrefsList_ShowsReactions(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "react", "--title", "Museum Day", "--down")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "prefs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Museum Day")
	assert.Contains(t, out, "Today")
}

func TestPrefsClear(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "react", "--title", "Museum Day", "--down")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "prefs", "clear")
	require.Error(t, err, "non-interactive clear needs --yes")
	assert.Len(t, a.Feedback.Preferences(context.Background()).Reactions, 1)

	out, err := executeCmd(t, a, "prefs", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 reaction.")
	assert.Empty(t, a.Feedback.Preferences(context.Background()).Reactions)
}

// --- serve ---

func TestServe_UsesAddrFlag(t *testing.T) {
	a, _ := testApp(t)
	a.DefaultAddr = "127.0.0.1:8080"
	var got string
	a.Serve = func(_ context.Context, addr string) error {
		got = addr
		return nil
	}

	_, err := executeCmd(t, a, "serve", "--addr", "127.0.0.1:9999")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", got)
}

func TestServe_NotConfigured(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "serve")
	require.Error(t, err)
}

func TestAnswerFor(t *testing.T) {
	assert.Equal(t, ReactionAnswer{Value: domain.ReactionUp, Reasons: []string{"menu"}}, answerFor(choiceUp, []string{"menu"}))
	assert.Equal(t, ReactionAnswer{Value: domain.ReactionDown}, answerFor(choiceDown, []string{"menu"}))
	assert.Equal(t, ReactionAnswer{Stop: true}, answerFor(choiceStop, nil))
	assert.Equal(t, ReactionAnswer{}, answerFor(choiceSkip, nil))
}
