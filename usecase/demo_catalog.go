package usecase

import "content-indexer/domain"

// demoCatalog is loaded at startup and by the init-index operation so a
// fresh process has something to search.
func demoCatalog() []domain.Entry {
	return []domain.Entry{
		{
			UID:            "demo-1",
			Title:          "Red High Top Sneakers with Stripes",
			ContentTypeUID: "product",
			Locale:         "en-us",
			URL:            "#",
			CreatedAt:      "2024-01-15T10:00:00Z",
			UpdatedAt:      "2024-01-15T10:00:00Z",
			PublishedAt:    "2024-01-15T10:00:00Z",
			Fields: map[string]any{
				"title":       "Red High Top Sneakers with Stripes",
				"description": "Stylish red high top sneakers featuring bold white stripes. Perfect for casual wear and street style.",
				"price":       89.99,
				"category":    "footwear",
				"colors":      []any{"red", "white"},
				"sizes":       []any{"7", "8", "9", "10", "11"},
				"brand":       "StreetStyle",
				"material":    "canvas",
				"features":    []any{"breathable", "durable", "stylish"},
			},
		},
		{
			UID:            "demo-2",
			Title:          "Healthy Eating Guide for Beginners",
			ContentTypeUID: "article",
			Locale:         "en-us",
			URL:            "#",
			CreatedAt:      "2024-01-14T14:30:00Z",
			UpdatedAt:      "2024-01-14T14:30:00Z",
			PublishedAt:    "2024-01-14T14:30:00Z",
			Fields: map[string]any{
				"title":        "Healthy Eating Guide for Beginners",
				"content":      "Starting your healthy eating journey can be overwhelming. This comprehensive guide covers the basics of nutrition, meal planning, and sustainable habits.",
				"author":       "Dr. Sarah Johnson",
				"category":     "health",
				"tags":         []any{"nutrition", "beginners", "healthy-living", "meal-planning"},
				"reading_time": "8 min read",
				"difficulty":   "beginner",
			},
		},
		{
			UID:            "demo-3",
			Title:          "Budget-Friendly Home Decor Under $50",
			ContentTypeUID: "blog_post",
			Locale:         "en-us",
			URL:            "#",
			CreatedAt:      "2024-01-13T09:15:00Z",
			UpdatedAt:      "2024-01-13T09:15:00Z",
			PublishedAt:    "2024-01-13T09:15:00Z",
			Fields: map[string]any{
				"title":         "Budget-Friendly Home Decor Under $50",
				"summary":       "Transform your living space without breaking the bank. Discover affordable decor ideas that look expensive but cost less than $50.",
				"content":       "Decorating your home doesn't have to be expensive. With some creativity and smart shopping, you can create a beautiful space on a budget.",
				"author":        "Emma Chen",
				"category":      "home-decor",
				"price_range":   "under-50",
				"difficulty":    "easy",
				"time_required": "2-4 hours",
			},
		},
		{
			UID:            "demo-4",
			Title:          "Running Shoes for Rainy Weather",
			ContentTypeUID: "product",
			Locale:         "en-us",
			URL:            "#",
			CreatedAt:      "2024-01-12T16:45:00Z",
			UpdatedAt:      "2024-01-12T16:45:00Z",
			PublishedAt:    "2024-01-12T16:45:00Z",
			Fields: map[string]any{
				"title":              "Running Shoes for Rainy Weather",
				"description":        "Waterproof running shoes designed specifically for wet conditions. Features include water-resistant upper, slip-resistant sole, and quick-dry technology.",
				"price":              129.99,
				"category":           "athletic-footwear",
				"colors":             []any{"black", "blue", "gray"},
				"sizes":              []any{"6", "7", "8", "9", "10", "11", "12"},
				"brand":              "RunTech",
				"material":           "synthetic",
				"features":           []any{"waterproof", "slip-resistant", "quick-dry", "breathable"},
				"weather_conditions": []any{"rain", "wet", "damp"},
			},
		},
		{
			UID:            "demo-5",
			Title:          "Getting Started with Content Management",
			ContentTypeUID: "page",
			Locale:         "en-us",
			URL:            "#",
			CreatedAt:      "2024-01-11T11:20:00Z",
			UpdatedAt:      "2024-01-11T11:20:00Z",
			PublishedAt:    "2024-01-11T11:20:00Z",
			Fields: map[string]any{
				"title":               "Getting Started with Content Management",
				"content":             "Learn the fundamentals of content management systems. This guide covers content creation, organization, publishing workflows, and best practices.",
				"audience":            "beginners",
				"category":            "content-management",
				"difficulty":          "beginner",
				"estimated_time":      "15 minutes",
				"prerequisites":       "none",
				"learning_objectives": []any{"Understand CMS basics", "Learn content workflows", "Master publishing processes"},
			},
		},
	}
}

// sampleWebhooks are replayed through the normalizer by the test-data operation.
func sampleWebhooks() []domain.CMSWebhookPayload {
	return []domain.CMSWebhookPayload{
		{
			Event: domain.EventEntryPublished,
			Data: domain.CMSWebhookData{
				Entry: map[string]any{
					"uid":          "test-entry-1",
					"title":        "Getting Started with Next.js",
					"locale":       "en-us",
					"url":          "/blog/getting-started-nextjs",
					"created_at":   "2024-01-15T10:00:00Z",
					"updated_at":   "2024-01-15T10:00:00Z",
					"published_at": "2024-01-15T10:00:00Z",
					"content":      "Learn how to build modern web applications with Next.js. This comprehensive guide covers everything from setup to deployment.",
					"description":  "A complete guide to getting started with Next.js framework.",
					"category":     "development",
					"tags":         []any{"nextjs", "react", "javascript", "tutorial"},
				},
				ContentType: domain.ContentTypeRef{UID: "blog_post", Title: "Blog Post"},
			},
		},
		{
			Event: domain.EventEntryPublished,
			Data: domain.CMSWebhookData{
				Entry: map[string]any{
					"uid":          "test-entry-2",
					"title":        "Best Running Shoes for Beginners",
					"locale":       "en-us",
					"url":          "/products/running-shoes-beginners",
					"created_at":   "2024-01-14T14:30:00Z",
					"updated_at":   "2024-01-14T14:30:00Z",
					"published_at": "2024-01-14T14:30:00Z",
					"description":  "Comfortable and affordable running shoes perfect for beginners. Features cushioned sole and breathable material.",
					"price":        79.99,
					"category":     "footwear",
					"brand":        "SportMax",
					"features":     []any{"cushioned", "breathable", "lightweight"},
					"sizes":        []any{"7", "8", "9", "10", "11"},
				},
				ContentType: domain.ContentTypeRef{UID: "product", Title: "Product"},
			},
		},
		{
			Event: domain.EventEntryPublished,
			Data: domain.CMSWebhookData{
				Entry: map[string]any{
					"uid":          "test-entry-3",
					"title":        "Healthy Breakfast Ideas",
					"locale":       "en-us",
					"url":          "/articles/healthy-breakfast-ideas",
					"created_at":   "2024-01-13T09:15:00Z",
					"updated_at":   "2024-01-13T09:15:00Z",
					"published_at": "2024-01-13T09:15:00Z",
					"content":      "Start your day right with these nutritious and delicious breakfast ideas. Perfect for busy mornings and healthy living.",
					"author":       "Dr. Sarah Johnson",
					"category":     "health",
					"tags":         []any{"nutrition", "breakfast", "healthy-living"},
					"reading_time": "5 min read",
				},
				ContentType: domain.ContentTypeRef{UID: "article", Title: "Article"},
			},
		},
	}
}

// ContentTypeInfo and LocaleInfo describe the catalog the demo stack offers.
type ContentTypeInfo struct {
	UID   string `json:"uid"`
	Title string `json:"title"`
}

type LocaleInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func knownContentTypes() []ContentTypeInfo {
	return []ContentTypeInfo{
		{UID: "product", Title: "Product"},
		{UID: "article", Title: "Article"},
		{UID: "blog_post", Title: "Blog Post"},
		{UID: "page", Title: "Page"},
	}
}

func knownLocales() []LocaleInfo {
	return []LocaleInfo{
		{Code: "en-us", Name: "English (US)"},
		{Code: "es-es", Name: "Spanish (Spain)"},
		{Code: "fr-fr", Name: "French (France)"},
	}
}
