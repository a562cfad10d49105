package taxonomy

// DefaultCategories is the built-in keyword table. Activity types come first,
// then the dining qualities that tend to drive restaurant preferences.
func DefaultCategories() []Category {
	return []Category{
		{Tag: "zoo", Description: "zoos and animal experiences",
			Keywords: []string{"zoo", "animal", "wildlife", "aquarium", "safari"}},
		{Tag: "museum", Description: "museums and exhibits",
			Keywords: []string{"museum", "exhibit", "gallery", "art", "science center"}},
		{Tag: "outdoor", Description: "outdoor activities",
			Keywords: []string{"park", "nature", "hiking", "beach", "garden", "trail", "outdoor"}},
		{Tag: "performance", Description: "shows and performances",
			Keywords: []string{"theater", "theatre", "show", "concert", "performance", "ballet", "opera", "circus"}},
		{Tag: "sports", Description: "sports and games",
			Keywords: []string{"game", "stadium", "sports", "soccer", "baseball", "basketball", "skating", "bowling"}},
		{Tag: "festival", Description: "festivals and fairs",
			Keywords: []string{"festival", "fair", "carnival", "parade", "celebration"}},
		{Tag: "educational", Description: "educational activities",
			Keywords: []string{"library", "workshop", "class", "learning", "stem", "planetarium"}},

		// Ambience
		{Tag: "cozy-ambience", Description: "cozy atmospheres",
			Keywords: []string{"cozy", "intimate", "warm atmosphere", "charming", "quaint", "homey"}},
		{Tag: "fun-atmosphere", Description: "fun, lively atmospheres",
			Keywords: []string{"fun", "lively", "vibrant", "energetic", "exciting", "entertaining"}},
		{Tag: "unique-decor", Description: "unique decor",
			Keywords: []string{"unique decor", "cool decor", "themed", "instagram", "instagrammable", "beautiful interior", "stunning"}},
		{Tag: "family-vibe", Description: "family-friendly vibes",
			Keywords: []string{"family-friendly", "kid-friendly", "welcoming", "casual", "relaxed"}},

		// Food quality
		{Tag: "authentic-food", Description: "authentic cuisine",
			Keywords: []string{"authentic", "traditional", "genuine", "real deal", "legit", "true to"}},
		{Tag: "fresh-quality", Description: "fresh ingredients",
			Keywords: []string{"fresh", "quality ingredients", "farm-to-table", "locally sourced", "homemade", "house-made", "scratch"}},
		{Tag: "award-winning", Description: "highly-rated spots",
			Keywords: []string{"award", "best in", "voted", "renowned", "famous for", "known for"}},

		// Menu
		{Tag: "great-for-kids", Description: "great kids options",
			Keywords: []string{"kids menu", "children", "kid-friendly", "crayons", "high chair", "play area", "family portions"}},
		{Tag: "unique-menu", Description: "unique menu items",
			Keywords: []string{"unique dishes", "creative", "innovative", "signature", "specialty", "one-of-a-kind", "unusual"}},
		{Tag: "generous-portions", Description: "generous portions",
			Keywords: []string{"generous portions", "huge portions", "big portions", "hearty", "filling"}},

		// Experience
		{Tag: "interactive-dining", Description: "interactive dining",
			Keywords: []string{"interactive", "tableside", "open kitchen", "watch", "cook your own", "hands-on"}},
		{Tag: "great-value", Description: "great value",
			Keywords: []string{"great value", "affordable", "reasonable prices", "good prices", "budget-friendly"}},
		{Tag: "local-gem", Description: "local gems",
			Keywords: []string{"local favorite", "hidden gem", "locals love", "neighborhood", "mom and pop", "family-run", "family-owned"}},
	}
}

// DefaultReasons maps each explicit reason to a disjoint group of dining tags.
func DefaultReasons() []ReasonGroup {
	return []ReasonGroup{
		{Reason: ReasonMenu, Description: "great menu choices",
			Tags: []string{"unique-menu", "great-for-kids", "generous-portions"}},
		{Reason: ReasonAmbience, Description: "great ambience and atmosphere",
			Tags: []string{"cozy-ambience", "fun-atmosphere", "unique-decor", "family-vibe"}},
		{Reason: ReasonAuthenticity, Description: "authentic, quality food",
			Tags: []string{"authentic-food", "fresh-quality", "award-winning", "local-gem"}},
	}
}
