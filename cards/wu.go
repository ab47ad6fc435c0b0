package cards

// WuCharacters is the Wu faction catalog.
var WuCharacters = []Character{
	{Name: "Sun Quan", Attack: 16, Combo: 6, Title: "Lord of Jiangdong", Faction: Wu},
	{Name: "Zhou Yu", Attack: 17, Combo: 8, Title: "Master of Fire Attack", Faction: Wu},
	{Name: "Lu Xun", Attack: 15, Combo: 7, Title: "Burner of Camps", Faction: Wu},
	{Name: "Gan Ning", Attack: 20, Combo: 3, Title: "Pirate of the Silk Sails", Faction: Wu},
	{Name: "Taishi Ci", Attack: 19, Combo: 5, Title: "Bow and Horse Supreme", Faction: Wu},
}
