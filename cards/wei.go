package cards

// WeiCharacters is the Wei faction catalog.
var WeiCharacters = []Character{
	{Name: "Cao Cao", Attack: 18, Combo: 6, Title: "Hero of Chaos", Faction: Wei},
	{Name: "Xiahou Dun", Attack: 19, Combo: 4, Title: "One-Eyed General", Faction: Wei},
	{Name: "Dian Wei", Attack: 21, Combo: 3, Title: "Evil Come Again", Faction: Wei},
	{Name: "Zhang Liao", Attack: 17, Combo: 7, Title: "Terror of Hefei", Faction: Wei},
	{Name: "Xu Chu", Attack: 20, Combo: 4, Title: "Tiger Fool", Faction: Wei},
}
