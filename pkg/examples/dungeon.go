package examples

func getDungeonExamples() ExampleSet {
	return ExampleSet{
		Name:        "dungeon",
		Description: "A small crypt with undead and a goblin warband",
		Entities: []ExampleEntity{
			{
				Name:        "Goblin",
				Description: "Weak but quick. Attacks in groups.",
				Tags:        []string{"enemy/humanoid"},
				Health:      7,
				Speed:       30,
			},
			{
				Name:        "Goblin Chief",
				Description: "Leads the warband from the back row.",
				Tags:        []string{"enemy/humanoid", "boss"},
				Health:      21,
				Speed:       30,
			},
			{
				Name:        "Skeleton",
				Description: "Rattles when it moves.",
				Tags:        []string{"enemy/undead"},
				Health:      13,
				Speed:       30,
			},
			{
				Name:        "Lich",
				Description: "Casts fire and frost spells from its phylactery chamber.",
				Tags:        []string{"enemy/undead", "boss", "caster"},
				Health:      135,
				Speed:       30,
			},
		},
		Maps: []ExampleMap{
			{
				Name:   "Crypt Entrance",
				Width:  24,
				Height: 16,
				Layers: []string{"ground", "walls", "doors"},
			},
			{
				Name:   "Phylactery Chamber",
				Width:  12,
				Height: 12,
				Layers: []string{"ground", "walls", "traps"},
			},
		},
	}
}
