package preference

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/outings/internal/domain"
	"github.com/alexanderramin/outings/internal/repository"
	"github.com/alexanderramin/outings/internal/taxonomy"
	"github.com/alexanderramin/outings/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = testutil.Date(2025, 6, 14)

func newTestEngine(t *testing.T, repo repository.PreferenceRepo) *Engine {
	t.Helper()
	if repo == nil {
		repo = repository.NewMemoryPreferenceRepo()
	}
	return NewEngine(context.Background(), taxonomy.MustDefaultVocabulary(),
		NewStore(repo, nil), WithClock(testutil.FixedClock(today)))
}

func zoo(title string) domain.ActivityRecord {
	return testutil.NewTestActivity(title+" Zoo", testutil.WithDescription("Lions and tigers"))
}

func museum(title string) domain.ActivityRecord {
	return testutil.NewTestActivity(title+" Museum", testutil.WithDescription("Dinosaur bones"))
}

func taqueria(title string) domain.ActivityRecord {
	return testutil.NewTestActivity(title, testutil.WithDescription("Authentic street tacos"))
}

func TestAddReaction_ThenReactionForReturnsIt(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()
	rec := zoo("City")

	assert.Equal(t, domain.ReactionNone, e.ReactionFor(rec.Title))

	_, err := e.AddReaction(ctx, rec, domain.ReactionUp)
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionUp, e.ReactionFor(rec.Title))

	_, err = e.AddReaction(ctx, rec, domain.ReactionDown)
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionDown, e.ReactionFor(rec.Title))
}

func TestAddReaction_SameTitleKeepsOnlyLatest(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	first := testutil.NewTestActivity("Riverside", testutil.WithDescription("A zoo by the water"))
	second := testutil.NewTestActivity("Riverside", testutil.WithDescription("Now a museum"))

	_, err := e.AddReaction(ctx, first, domain.ReactionUp)
	require.NoError(t, err)
	_, err = e.AddReaction(ctx, second, domain.ReactionDown)
	require.NoError(t, err)

	reactions := e.Reactions()
	require.Len(t, reactions, 1)
	assert.Equal(t, "Riverside", reactions[0].Title)
	assert.Equal(t, domain.ReactionDown, reactions[0].Value)
	assert.Equal(t, []string{"museum"}, reactions[0].Categories)
}

func TestAddReaction_ReplacedTitleMovesToEnd(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "A"} {
		_, err := e.AddReaction(ctx, zoo(title), domain.ReactionUp)
		require.NoError(t, err)
	}

	reactions := e.Reactions()
	require.Len(t, reactions, 2)
	assert.Equal(t, "B Zoo", reactions[0].Title)
	assert.Equal(t, "A Zoo", reactions[1].Title)
}

func TestAddReaction_RejectsInvalidValue(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.AddReaction(context.Background(), zoo("City"), domain.ReactionNone)
	assert.ErrorIs(t, err, ErrInvalidReaction)
	assert.Empty(t, e.Reactions())
}

func TestAddReaction_ExplicitReasonsOnThumbsUp(t *testing.T) {
	e := newTestEngine(t, nil)

	r, err := e.AddReaction(context.Background(), taqueria("El Sol"), domain.ReactionUp, "Menu", " ambience ")
	require.NoError(t, err)
	assert.Equal(t, []string{"ambience", "menu"}, r.Categories)
	assert.Equal(t, "2025-06-14", r.Date)
}

func TestAddReaction_ReasonsIgnoredOnThumbsDown(t *testing.T) {
	e := newTestEngine(t, nil)

	r, err := e.AddReaction(context.Background(), taqueria("El Sol"), domain.ReactionDown, "menu")
	require.NoError(t, err)
	assert.Equal(t, []string{"authentic-food", "authenticity"}, r.Categories)
}

func TestAddReaction_UnknownReason(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.AddReaction(context.Background(), taqueria("El Sol"), domain.ReactionUp, "parking")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parking")
	assert.Empty(t, e.Reactions())
}

func TestMatches_BelowThreshold(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	_, err := e.AddReaction(ctx, zoo("First"), domain.ReactionUp)
	require.NoError(t, err)
	assert.False(t, e.Matches(zoo("Candidate")), "one like is not enough")

	_, err = e.AddReaction(ctx, zoo("Second"), domain.ReactionUp)
	require.NoError(t, err)
	assert.True(t, e.Matches(zoo("Candidate")))
	assert.Equal(t, []string{"zoo"}, e.MatchingCategories(zoo("Candidate")))
	assert.False(t, e.Matches(museum("Other")))
}

func TestMatches_DislikesDoNotCount(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := e.AddReaction(ctx, zoo(title), domain.ReactionDown)
		require.NoError(t, err)
	}
	assert.False(t, e.Matches(zoo("Candidate")))
}

func TestMatches_ExcludedCategories(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	for _, title := range []string{"El Sol", "La Luna"} {
		_, err := e.AddReaction(ctx, taqueria(title), domain.ReactionUp, "authenticity")
		require.NoError(t, err)
	}

	candidate := taqueria("Casa Verde")
	assert.True(t, e.Matches(candidate))
	assert.True(t, e.Matches(candidate, ""), "empty excludes are ignored")
	assert.False(t, e.Matches(candidate, "Authentic"), "substring of the tag")
	assert.False(t, e.Matches(candidate, "authenticity and more"), "tag is a substring of the exclude")
}

func TestBuildSummary_NoneWithoutStrongPreferences(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	_, ok := e.BuildSummary()
	assert.False(t, ok)

	_, err := e.AddReaction(ctx, zoo("One"), domain.ReactionUp)
	require.NoError(t, err)
	_, err = e.AddReaction(ctx, museum("Two"), domain.ReactionDown)
	require.NoError(t, err)

	summary, ok := e.BuildSummary()
	assert.False(t, ok)
	assert.Empty(t, summary)
}

func TestBuildSummary_LikesOnly(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	for _, title := range []string{"One", "Two"} {
		_, err := e.AddReaction(ctx, zoo(title), domain.ReactionUp)
		require.NoError(t, err)
	}

	summary, ok := e.BuildSummary()
	require.True(t, ok)
	assert.Equal(t, "**Family Preference History:**\n"+
		"The family tends to enjoy: zoos and animal experiences\n"+
		"\n"+
		"When ranking results, give higher priority to options matching these preferences, "+
		"but ALWAYS include at least 1-2 options outside their usual interests for discovery.",
		summary)
}

func TestBuildSummary_OrderedAndIncludesDislikes(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	for _, title := range []string{"One", "Two"} {
		_, err := e.AddReaction(ctx, zoo(title), domain.ReactionUp)
		require.NoError(t, err)
	}
	for _, title := range []string{"One", "Two", "Three"} {
		_, err := e.AddReaction(ctx, museum(title), domain.ReactionUp)
		require.NoError(t, err)
	}
	for _, title := range []string{"Ballet", "Opera"} {
		_, err := e.AddReaction(ctx, testutil.NewTestActivity(title, testutil.WithDescription("Evening theater")), domain.ReactionDown)
		require.NoError(t, err)
	}

	summary, ok := e.BuildSummary()
	require.True(t, ok)
	assert.Contains(t, summary, "The family tends to enjoy: museums and exhibits, zoos and animal experiences\n")
	assert.Contains(t, summary, "The family tends to avoid: shows and performances\n")
	assert.Contains(t, summary, "ALWAYS include at least 1-2 options outside their usual interests")

	again, _ := e.BuildSummary()
	assert.Equal(t, summary, again)
}

func TestStats(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	_, err := e.AddReaction(ctx, zoo("One"), domain.ReactionUp)
	require.NoError(t, err)
	_, err = e.AddReaction(ctx, zoo("Two"), domain.ReactionUp)
	require.NoError(t, err)
	_, err = e.AddReaction(ctx, museum("Three"), domain.ReactionDown)
	require.NoError(t, err)

	stats := e.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Liked)
	assert.Equal(t, 1, stats.Disliked)
	assert.Equal(t, []CategoryScore{{Tag: "zoo", Count: 2}}, stats.Likes)
	assert.Equal(t, []CategoryScore{{Tag: "museum", Count: 1}}, stats.Dislikes)
}

func TestClear_ResetsAndPersists(t *testing.T) {
	repo := repository.NewMemoryPreferenceRepo()
	e := newTestEngine(t, repo)
	ctx := context.Background()

	_, err := e.AddReaction(ctx, zoo("One"), domain.ReactionUp)
	require.NoError(t, err)
	e.Clear(ctx)

	assert.Empty(t, e.Reactions())
	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PreferenceVersion, stored.Version)
	assert.Empty(t, stored.Reactions)
}

func TestEngine_PersistsAcrossInstances(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePreferenceRepo(database, testutil.NewTestUoW(database), "")
	ctx := context.Background()

	first := newTestEngine(t, repo)
	_, err := first.AddReaction(ctx, zoo("One"), domain.ReactionUp)
	require.NoError(t, err)

	second := newTestEngine(t, repo)
	assert.Equal(t, domain.ReactionUp, second.ReactionFor("One Zoo"))
}

func TestEngine_SaveFailureKeepsInMemoryState(t *testing.T) {
	repo := &testutil.FailingPreferenceRepo{Err: errors.New("read-only filesystem")}
	e := newTestEngine(t, repo)

	_, err := e.AddReaction(context.Background(), zoo("One"), domain.ReactionUp)
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionUp, e.ReactionFor("One Zoo"))
	assert.Equal(t, 1, repo.Saves)
}

func TestEngine_ConcurrentReactions(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = e.AddReaction(ctx, zoo(fmt.Sprintf("Z%d", i)), domain.ReactionUp)
			_ = e.Matches(zoo("Candidate"))
			_, _ = e.BuildSummary()
		}()
	}
	wg.Wait()

	assert.Len(t, e.Reactions(), 50)
	assert.Equal(t, 50, e.Stats().Likes[0].Count)
}
