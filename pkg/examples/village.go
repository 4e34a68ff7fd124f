package examples

func getVillageExamples() ExampleSet {
	return ExampleSet{
		Name:        "village",
		Description: "A quiet village with traders and a guard",
		Entities: []ExampleEntity{
			{
				Name:        "Blacksmith",
				Description: "Sells and repairs weapons.",
				Tags:        []string{"npc/trader"},
				Health:      20,
				Speed:       25,
			},
			{
				Name:        "Village Guard",
				Description: "Patrols the square at night.",
				Tags:        []string{"npc/guard"},
				Health:      30,
				Speed:       30,
			},
		},
		Maps: []ExampleMap{
			{
				Name:   "Village Square",
				Width:  32,
				Height: 32,
				Layers: []string{"ground", "buildings", "props"},
			},
		},
	}
}
