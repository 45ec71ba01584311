package catalog

// Default returns the compiled-in catalog used when no external file is
// configured. Content mirrors the launch campaign data maintained by the
// marketing team.
func Default() *Catalog {
	return &Catalog{
		Tiers: []FundingTier{
			{
				ID:     "disciple",
				Name:   "Disciple",
				Amount: 5,
				Benefits: []string{
					"Name in the supporters list",
					"Exclusive launch updates",
				},
				EstimatedBackers: 500,
			},
			{
				ID:     "early-builder",
				Name:   "Early Builder",
				Amount: 15,
				Benefits: []string{
					"All Disciple benefits",
					"$20 worth of in-game currency on launch",
					"Early access to the closed beta",
				},
				EstimatedBackers: 250,
			},
			{
				ID:     "founder",
				Name:   "Founder",
				Amount: 50,
				Benefits: []string{
					"All Early Builder benefits",
					"Permanent Founder badge on your profile",
					"Founder-only game modes",
				},
				Badge:            "Most Popular",
				EstimatedBackers: 120,
			},
			{
				ID:     "kingdom-partner",
				Name:   "Kingdom Partner",
				Amount: 100,
				Benefits: []string{
					"All Founder benefits",
					"Quarterly developer roundtable invite",
					"Vote on upcoming features",
				},
				EstimatedBackers: 60,
			},
			{
				ID:     "elder",
				Name:   "Elder",
				Amount: 250,
				Benefits: []string{
					"All Kingdom Partner benefits",
					"Custom in-game title",
					"Priority support channel",
				},
				EstimatedBackers: 25,
			},
			{
				ID:     "vision-bearer",
				Name:   "Vision Bearer",
				Amount: 500,
				Benefits: []string{
					"All Elder benefits",
					"Design an in-game item with the team",
				},
				Badge:            "Limited Spots",
				EstimatedBackers: 10,
			},
			{
				ID:     "kingdom-founding-family",
				Name:   "Kingdom Founding Family",
				Amount: 1000,
				Benefits: []string{
					"All Vision Bearer benefits",
					"An NPC named after you",
					"Lifetime VIP status",
				},
				Badge:            "Limited Spots",
				EstimatedBackers: 5,
			},
		},
		Perks: []Perk{
			{ID: "early-access", Title: "Early Access", Description: "Be among the first to play Kingdom Chronicles before public launch", Icon: "🎮"},
			{ID: "exclusive-content", Title: "Exclusive Content", Description: "Access special game modes and content only available to VIP members", Icon: "👑"},
			{ID: "bonus-rewards", Title: "Bonus Rewards", Description: "Start with extra coins, power-ups, and exclusive in-game items", Icon: "💰"},
			{ID: "priority-support", Title: "Priority Support", Description: "Get priority customer support and direct feedback channels", Icon: "💬"},
			{ID: "beta-features", Title: "Beta Features", Description: "Test and influence new features before they go live", Icon: "🔬"},
			{ID: "community-access", Title: "VIP Community", Description: "Join an exclusive community of early supporters and game developers", Icon: "🌟"},
		},
		Offers: []Offer{
			{ID: "reservation-bonus", Title: "$1 Reservation Bonus", Description: "Reserve your spot for just $1 and get $10 worth of in-game currency on launch", Badge: "Limited Time"},
			{ID: "founder-badge", Title: "Founder Badge", Description: "Receive an exclusive \"Founder\" badge that will be permanently displayed on your profile"},
			{ID: "launch-day-prize", Title: "Launch Day Prize Pool", Description: "All VIP members are automatically entered into a special launch day prize draw"},
		},
		Payment: PaymentConfig{
			ReservationAmount: 1,
			Currency:          "USD",
			USDTWalletAddress: "TXNxp5psNN3dtXFM8ggPc9G56LxzLaQxdU",
			USDTNetwork:       "TRC-20",
		},
	}
}
