package models

import "time"

// Demo data. Panels show it when their collection cannot be fetched and the
// server's seed command inserts it into an empty database.

// SampleBusinessFields returns the demo business field templates
func SampleBusinessFields() []BusinessField {
	now := time.Now().UTC()
	return []BusinessField{
		{
			ID: "1", Name: "Company Name", Type: FieldTypeText, Required: true,
			Category: BusinessCategoryBasic, Order: 1, Validation: JSONB{}, Options: StringArray{},
			Active: true, CreatedAt: now,
		},
		{
			ID: "2", Name: "Business Registration Number", Type: FieldTypeText, Required: true,
			Category: BusinessCategoryLegal, Order: 2, Validation: JSONB{}, Options: StringArray{},
			Active: true, CreatedAt: now,
		},
	}
}

// SampleSocialHandles returns the demo social handles
func SampleSocialHandles() []SocialHandle {
	now := time.Now().UTC()
	return []SocialHandle{
		{
			ID: "1", Name: "Instagram", Handle: "@company_official",
			URL: "https://instagram.com/company_official", Followers: 15420, Active: true, CreatedAt: now,
		},
		{
			ID: "2", Name: "Twitter", Handle: "@company",
			URL: "https://twitter.com/company", Followers: 8930, Active: true, CreatedAt: now,
		},
	}
}

// SamplePricingModels returns the demo pricing tiers
func SamplePricingModels() []PricingModel {
	now := time.Now().UTC()
	return []PricingModel{
		{
			ID: "1", Name: "Basic Subscription", Type: PricingRecurring, Price: 29.99, Currency: "USD",
			Interval: "monthly", Features: StringArray{"Basic features", "Email support"}, Active: true, CreatedAt: now,
		},
		{
			ID: "2", Name: "Premium Plan", Type: PricingRecurring, Price: 99.99, Currency: "USD",
			Interval: "monthly", Features: StringArray{"All features", "Priority support", "Advanced analytics"},
			Active: true, CreatedAt: now,
		},
	}
}

// SampleDisplayTypes returns the demo display layouts
func SampleDisplayTypes() []DisplayType {
	now := time.Now().UTC()
	return []DisplayType{
		{
			ID: "1", Name: "Grid Layout", TypeCategory: "grid", Columns: 3, Responsive: true,
			Properties: JSONB{"spacing": "medium", "alignment": "center", "animation": "fade"},
			Active:     true, CreatedAt: now,
		},
		{
			ID: "2", Name: "List View", TypeCategory: "list", Columns: 1, Responsive: true,
			Properties: JSONB{"spacing": "compact", "alignment": "left", "animation": "slide"},
			Active:     true, CreatedAt: now,
		},
		{
			ID: "3", Name: "Card Carousel", TypeCategory: "carousel", Columns: 4, Responsive: true,
			Properties: JSONB{"spacing": "large", "alignment": "center", "animation": "carousel", "autoplay": true},
			Active:     false, CreatedAt: now,
		},
	}
}

// SampleSignupLevels returns the static signup levels
func SampleSignupLevels() []SignupLevel {
	now := time.Now().UTC()
	return []SignupLevel{
		{
			ID: "1", Name: "Basic Signup", Level: 1,
			Requirements:         []string{"Email", "Password"},
			Permissions:          []string{"View Categories", "Basic Access"},
			VerificationRequired: false, AutoApprove: true, Active: true, CreatedAt: now,
		},
		{
			ID: "2", Name: "Premium Member", Level: 2,
			Requirements:         []string{"Email", "Password", "Phone Number", "Address"},
			Permissions:          []string{"Full Access", "Premium Features", "Priority Support"},
			VerificationRequired: true, AutoApprove: false, Active: true, CreatedAt: now,
		},
		{
			ID: "3", Name: "Business Account", Level: 3,
			Requirements:         []string{"Business Email", "Company Details", "Tax ID", "Business License"},
			Permissions:          []string{"Business Features", "API Access", "Bulk Operations"},
			VerificationRequired: true, AutoApprove: false, Active: true, CreatedAt: now,
		},
	}
}
