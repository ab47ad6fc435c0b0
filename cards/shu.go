package cards

// ShuCharacters is the Shu faction catalog.
var ShuCharacters = []Character{
	{Name: "Liu Bei", Attack: 15, Combo: 5, Title: "Lord of Benevolence", Faction: Shu},
	{Name: "Guan Yu", Attack: 20, Combo: 8, Title: "Saint of War", Faction: Shu},
	{Name: "Zhang Fei", Attack: 18, Combo: 6, Title: "Roar of Changban", Faction: Shu},
	{Name: "Zhao Yun", Attack: 16, Combo: 7, Title: "Dragon of Changshan", Faction: Shu},
	{Name: "Ma Chao", Attack: 19, Combo: 4, Title: "Splendid Stallion", Faction: Shu},
	{Name: "Huang Zhong", Attack: 17, Combo: 5, Title: "Old Bowman", Faction: Shu},
	{Name: "Wei Yan", Attack: 19, Combo: 4, Title: "Rebellious Spine", Faction: Shu},
	{Name: "Pang Tong", Attack: 13, Combo: 9, Title: "Fledgling Phoenix", Faction: Shu},
	{Name: "Zhuge Liang", Attack: 12, Combo: 10, Title: "Crouching Dragon", Faction: Shu},
	{Name: "Jiang Wei", Attack: 18, Combo: 6, Title: "Kirin of Tianshui", Faction: Shu},
	{Name: "Ma Dai", Attack: 16, Combo: 5, Title: "Liang Cavalier", Faction: Shu},
	{Name: "Guan Ping", Attack: 15, Combo: 4, Title: "Adopted Valor", Faction: Shu},
	{Name: "Guan Xing", Attack: 14, Combo: 6, Title: "Young Hero", Faction: Shu},
	{Name: "Zhang Bao", Attack: 17, Combo: 3, Title: "Fierce as His Father", Faction: Shu},
	{Name: "Liu Shan", Attack: 8, Combo: 12, Title: "Carefree Heir", Faction: Shu},
	{Name: "Fa Zheng", Attack: 14, Combo: 7, Title: "Schemer of Odd Plans", Faction: Shu},
	{Name: "Li Yan", Attack: 16, Combo: 5, Title: "Guardian Regent", Faction: Shu},
	{Name: "Wang Ping", Attack: 15, Combo: 4, Title: "Flying Army Warden", Faction: Shu},
	{Name: "Deng Zhi", Attack: 13, Combo: 6, Title: "Silver-Tongued Envoy", Faction: Shu},
	{Name: "Ma Su", Attack: 11, Combo: 8, Title: "Paper Strategist", Faction: Shu},
}
