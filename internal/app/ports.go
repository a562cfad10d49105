package app

import "context"

type RecommendUseCase interface {
	Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error)
	// PreviewPrompt renders the prompt Recommend would send, without calling
	// the provider.
	PreviewPrompt(ctx context.Context, req RecommendRequest) (string, error)
}

type FeedbackUseCase interface {
	React(ctx context.Context, req ReactRequest) (*ReactResponse, error)
	Preferences(ctx context.Context) PreferencesView
	Clear(ctx context.Context) error
}
