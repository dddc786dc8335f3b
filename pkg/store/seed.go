package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/workwAIse/alex-web/pkg/domain"
)

// SeedDefaults loads the default portfolio content into an empty store.
// A store that already has projects is left untouched so edits survive
// restarts.
func SeedDefaults(ctx context.Context, s ContentStore) error {
	existing, err := s.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("check existing content: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for i, p := range defaultProjects {
		p.ID = uuid.New().String()
		p.Position = i
		if err := s.CreateProject(ctx, &p); err != nil {
			return fmt.Errorf("seed project %q: %w", p.Title, err)
		}
	}
	for i, g := range defaultGems {
		g.ID = uuid.New().String()
		g.Position = i
		if err := s.CreateGem(ctx, &g); err != nil {
			return fmt.Errorf("seed gem %q: %w", g.Title, err)
		}
	}
	return nil
}

var defaultProjects = []domain.Project{
	{
		Title:       "workwAIse — AI Chat Interface",
		Link:        "https://www.workwaise.app/home",
		Description: "AI chat with built-in prompt engineering.",
		Tech:        "Next.js, Vercel AI SDK, Neon DB, Tailwind",
		Details: []string{
			"Built a clean, extensible AI assistant interface from scratch.",
			"Integrated Vercel AI SDK with Neon for persistence.",
			"Focus on context persistence + conversational UX for product workflows.",
		},
	},
	{
		Title:       "CV Website",
		Link:        "https://alexbuechel.framer.ai",
		Description: "Personal CV site built in Framer.",
		Tech:        "Framer",
		Details: []string{
			"Rapid no-code design iteration for personal branding.",
			"Served as prototype to inform the later code-based CV.",
		},
	},
	{
		Title:       "Portfolio Website",
		Link:        "https://alexb-ai.vercel.app",
		Description: "Portfolio site leveraging AI, animations, and interactive visuals.",
		Tech:        "Next.js, OpenAI SDK, Unicorn Studio, Lottie",
		Details: []string{
			"Full code implementation of personal site with AI extensions.",
			"Leveraged Lottie + Unicorn Studio for expressive visuals.",
		},
	},
	{
		Title:       "Stance — AI Persona Panel & User Feedback",
		Link:        "https://stance-ai.vercel.app",
		Description: "AI persona panel + user research feedback platform for product teams.",
		Tech:        "Next.js, Supabase, OpenAI SDK, Tailwind",
		Details: []string{
			"Built a tool to enable product teams to structure qualitative feedback.",
			"AI used for thematic tagging & summarization of feedback.",
		},
	},
}

var defaultGems = []domain.Gem{
	{
		Title:       "Sport Lover",
		Description: "Group training, running, cycling — and always exploring new group sports.",
		Icon:        "activity",
		IconColor:   "#10B981",
		Link:        "https://www.beat81.com",
	},
	{
		Title:       "Avid Reader",
		Description: "From PM classics to fantasy and sci-fi — good books and great storytelling.",
		Icon:        "book-open",
		IconColor:   "#FB7185",
	},
	{
		Title:       "City Collector",
		Description: "Discovering new countries and learning culture through food, people, and history.",
		Icon:        "map-pin",
		IconColor:   "#FB923C",
	},
	{
		Title:       "AI Explorer",
		Description: "Experimenting with LLMs and AI workflows to stay at the forefront of what's possible.",
		Icon:        "sparkles",
		IconColor:   "#A78BFA",
		Link:        "https://cursor.com",
	},
}
