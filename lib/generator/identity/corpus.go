package identity

// City - строка адресного корпуса. Dept - код департамента, первые две
// цифры почтового индекса.
type City struct {
	Name   string
	Region string
	Dept   string
}

// Corpus - источник имен и адресов для одной локали.
type Corpus struct {
	Country     string
	MaleNames   []string
	FemaleNames []string
	LastNames   []string
	StreetTypes []string
	StreetNames []string
	Cities      []City
	PhonePrefix []string
}

// French - корпус fr_FR. Имена записаны в ASCII: они попадают
// в адреса e-mail.
var French = Corpus{
	Country: "France",
	MaleNames: []string{
		"Lucas", "Hugo", "Louis", "Gabriel", "Arthur", "Jules", "Adam", "Nathan",
		"Thomas", "Nicolas", "Julien", "Antoine", "Mathieu", "Pierre", "Paul",
		"Maxime", "Alexandre", "Romain", "Vincent", "Olivier", "Guillaume",
		"Quentin", "Baptiste", "Martin", "Victor", "Simon", "Benjamin", "Leo",
	},
	FemaleNames: []string{
		"Emma", "Louise", "Jade", "Alice", "Chloe", "Lina", "Camille", "Manon",
		"Julie", "Sarah", "Marie", "Claire", "Laura", "Pauline", "Juliette",
		"Margaux", "Charlotte", "Mathilde", "Lea", "Anais", "Sophie", "Lucie",
		"Clara", "Ines", "Agathe", "Caroline", "Valentine", "Elise",
	},
	LastNames: []string{
		"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit",
		"Durand", "Leroy", "Moreau", "Simon", "Laurent", "Lefebvre", "Michel",
		"Garcia", "David", "Bertrand", "Roux", "Vincent", "Fournier", "Morel",
		"Girard", "Andre", "Mercier", "Dupont", "Lambert", "Bonnet", "Francois",
		"Martinez", "Legrand", "Garnier", "Faure", "Rousseau", "Blanc", "Guerin",
		"Muller", "Henry", "Roussel", "Nicolas", "Perrin", "Morin", "Mathieu",
		"Clement", "Gauthier", "Dumont", "Lopez", "Fontaine", "Chevalier",
	},
	StreetTypes: []string{
		"rue", "avenue", "boulevard", "place", "impasse", "chemin", "allée", "quai",
	},
	StreetNames: []string{
		"de la République", "Victor Hugo", "Jean Jaurès", "Pasteur", "du Moulin",
		"des Lilas", "de la Gare", "Gambetta", "du Général de Gaulle",
		"Saint-Michel", "des Écoles", "de Verdun", "Voltaire", "de la Paix",
		"Émile Zola", "des Tilleuls", "du Château", "de l'Église", "Foch",
		"Carnot", "de la Liberté", "des Acacias", "Jean Moulin", "Nationale",
	},
	Cities: []City{
		{Name: "Paris", Region: "Île-de-France", Dept: "75"},
		{Name: "Versailles", Region: "Île-de-France", Dept: "78"},
		{Name: "Lyon", Region: "Auvergne-Rhône-Alpes", Dept: "69"},
		{Name: "Grenoble", Region: "Auvergne-Rhône-Alpes", Dept: "38"},
		{Name: "Marseille", Region: "Provence-Alpes-Côte d'Azur", Dept: "13"},
		{Name: "Nice", Region: "Provence-Alpes-Côte d'Azur", Dept: "06"},
		{Name: "Toulouse", Region: "Occitanie", Dept: "31"},
		{Name: "Montpellier", Region: "Occitanie", Dept: "34"},
		{Name: "Bordeaux", Region: "Nouvelle-Aquitaine", Dept: "33"},
		{Name: "Limoges", Region: "Nouvelle-Aquitaine", Dept: "87"},
		{Name: "Nantes", Region: "Pays de la Loire", Dept: "44"},
		{Name: "Angers", Region: "Pays de la Loire", Dept: "49"},
		{Name: "Strasbourg", Region: "Grand Est", Dept: "67"},
		{Name: "Reims", Region: "Grand Est", Dept: "51"},
		{Name: "Lille", Region: "Hauts-de-France", Dept: "59"},
		{Name: "Amiens", Region: "Hauts-de-France", Dept: "80"},
		{Name: "Rennes", Region: "Bretagne", Dept: "35"},
		{Name: "Brest", Region: "Bretagne", Dept: "29"},
		{Name: "Rouen", Region: "Normandie", Dept: "76"},
		{Name: "Caen", Region: "Normandie", Dept: "14"},
		{Name: "Dijon", Region: "Bourgogne-Franche-Comté", Dept: "21"},
		{Name: "Besançon", Region: "Bourgogne-Franche-Comté", Dept: "25"},
		{Name: "Orléans", Region: "Centre-Val de Loire", Dept: "45"},
		{Name: "Tours", Region: "Centre-Val de Loire", Dept: "37"},
	},
	PhonePrefix: []string{"01", "02", "03", "04", "05", "06", "07", "09"},
}
