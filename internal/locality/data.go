package locality

import "github.com/Kirankkt/Trivandrum-Realty-v2/internal/geo"

var profiles = []Profile{
	{Name: "Akkulam", Coords: geo.Coordinates{Lat: 8.5243, Lng: 76.9225}, Tier: TierSuburb, BeachDistanceKm: 3.5},
	{Name: "Ambalamukku", Coords: geo.Coordinates{Lat: 8.4936, Lng: 76.9553}, Tier: TierSuburb, BeachDistanceKm: 9.0},
	{Name: "Ambalathara", Coords: geo.Coordinates{Lat: 8.5032, Lng: 76.9012}, Tier: TierSuburb, BeachDistanceKm: 4.5},
	{Name: "Anayara", Coords: geo.Coordinates{Lat: 8.5601, Lng: 76.9034}, Tier: TierSuburb, BeachDistanceKm: 4.0},
	{Name: "Attingal", Coords: geo.Coordinates{Lat: 8.6905, Lng: 76.8155}, Tier: TierSuburb, BeachDistanceKm: 10.0},
	{Name: "Attukal", Coords: geo.Coordinates{Lat: 8.4852, Lng: 76.9456}, Tier: TierSuburb, BeachDistanceKm: 5.0},
	{Name: "Balaramapuram", Coords: geo.Coordinates{Lat: 8.3827, Lng: 76.9682}, Tier: TierSuburb, BeachDistanceKm: 12.0},
	{Name: "Beemapally", Coords: geo.Coordinates{Lat: 8.4789, Lng: 76.9256}, Tier: TierSuburb, BeachDistanceKm: 0.5},
	{Name: "Chackai", Coords: geo.Coordinates{Lat: 8.5012, Lng: 76.9298}, Tier: TierSuburb, BeachDistanceKm: 2.5},
	{Name: "Chanthavila", Coords: geo.Coordinates{Lat: 8.3501, Lng: 77.0234}, Tier: TierSuburb, BeachDistanceKm: 12.0},
	{Name: "Chenkottukonam", Coords: geo.Coordinates{Lat: 8.6123, Lng: 77.0456}, Tier: TierSuburb, BeachDistanceKm: 14.0},
	{Name: "East Fort", Coords: geo.Coordinates{Lat: 8.4976, Lng: 76.9512}, Tier: TierCity, BeachDistanceKm: 4.5},
	{Name: "Enchakkal", Coords: geo.Coordinates{Lat: 8.5156, Lng: 76.9234}, Tier: TierSuburb, BeachDistanceKm: 3.5},
	{Name: "Gandhipuram", Coords: geo.Coordinates{Lat: 8.3945, Lng: 76.9834}, Tier: TierSuburb, BeachDistanceKm: 10.0},
	{Name: "Jagathy", Coords: geo.Coordinates{Lat: 8.5423, Lng: 76.9567}, Tier: TierCity, BeachDistanceKm: 7.0},
	{Name: "Kaniyapuram", Coords: geo.Coordinates{Lat: 8.5789, Lng: 76.8845}, Tier: TierSuburb, BeachDistanceKm: 6.0},
	{Name: "Karamana", Coords: geo.Coordinates{Lat: 8.5123, Lng: 76.9678}, Tier: TierCity, BeachDistanceKm: 6.0},
	{Name: "Karyavattom", Coords: geo.Coordinates{Lat: 8.5567, Lng: 76.9012}, Tier: TierTech, BeachDistanceKm: 8.0},
	{Name: "Kazhakkoottam", Coords: geo.Coordinates{Lat: 8.5967, Lng: 76.8734}, Tier: TierTech, BeachDistanceKm: 3.0},
	{Name: "Kesavadasapuram", Coords: geo.Coordinates{Lat: 8.5245, Lng: 76.9456}, Tier: TierCity, BeachDistanceKm: 7.0},
	{Name: "Kilimanoor", Coords: geo.Coordinates{Lat: 8.6445, Lng: 77.0534}, Tier: TierSuburb, BeachDistanceKm: 25.0},
	{Name: "Kovalam", Coords: geo.Coordinates{Lat: 8.4001, Lng: 76.9788}, Tier: TierSuburb, BeachDistanceKm: 0.5},
	{Name: "Kowdiar", Coords: geo.Coordinates{Lat: 8.5241, Lng: 76.9478}, Tier: TierPremium, BeachDistanceKm: 7.5},
	{Name: "Kudappanakunnu", Coords: geo.Coordinates{Lat: 8.5089, Lng: 77.0012}, Tier: TierSuburb, BeachDistanceKm: 10.0},
	{Name: "Kumarapuram", Coords: geo.Coordinates{Lat: 8.4956, Lng: 76.9589}, Tier: TierCity, BeachDistanceKm: 5.5},
	{Name: "Kuravankonam", Coords: geo.Coordinates{Lat: 8.5334, Lng: 76.9823}, Tier: TierSuburb, BeachDistanceKm: 8.0},
	{Name: "Malayinkeezhu", Coords: geo.Coordinates{Lat: 8.4012, Lng: 77.0123}, Tier: TierSuburb, BeachDistanceKm: 14.0},
	{Name: "Manacaud", Coords: geo.Coordinates{Lat: 8.5134, Lng: 76.9712}, Tier: TierCity, BeachDistanceKm: 5.0},
	{Name: "Mangalapuram", Coords: geo.Coordinates{Lat: 8.4523, Lng: 76.9123}, Tier: TierSuburb, BeachDistanceKm: 8.0},
	{Name: "Mannanthala", Coords: geo.Coordinates{Lat: 8.5456, Lng: 77.0001}, Tier: TierSuburb, BeachDistanceKm: 10.0},
	{Name: "Maruthankuzhy", Coords: geo.Coordinates{Lat: 8.5689, Lng: 76.8923}, Tier: TierSuburb, BeachDistanceKm: 8.0},
	{Name: "Medical College", Coords: geo.Coordinates{Lat: 8.5301, Lng: 76.9445}, Tier: TierPremium, BeachDistanceKm: 6.0},
	{Name: "Menamkulam", Coords: geo.Coordinates{Lat: 8.8234, Lng: 76.7512}, Tier: TierSuburb, BeachDistanceKm: 1.5},
	{Name: "Muttada", Coords: geo.Coordinates{Lat: 8.4678, Lng: 76.9934}, Tier: TierSuburb, BeachDistanceKm: 8.5},
	{Name: "Nalanchira", Coords: geo.Coordinates{Lat: 8.5167, Lng: 77.0034}, Tier: TierSuburb, BeachDistanceKm: 9.0},
	{Name: "Nedumangad", Coords: geo.Coordinates{Lat: 8.6012, Lng: 77.0012}, Tier: TierSuburb, BeachDistanceKm: 18.0},
	{Name: "Nemom", Coords: geo.Coordinates{Lat: 8.4123, Lng: 76.9934}, Tier: TierSuburb, BeachDistanceKm: 10.0},
	{Name: "Neyyattinkara", Coords: geo.Coordinates{Lat: 8.3989, Lng: 77.0823}, Tier: TierSuburb, BeachDistanceKm: 15.0},
	{Name: "Ooruttambalam", Coords: geo.Coordinates{Lat: 8.6234, Lng: 77.0623}, Tier: TierSuburb, BeachDistanceKm: 14.0},
	{Name: "Palayam", Coords: geo.Coordinates{Lat: 8.5067, Lng: 76.9523}, Tier: TierCity, BeachDistanceKm: 5.5},
	{Name: "Pallipuram", Coords: geo.Coordinates{Lat: 8.4823, Lng: 76.9134}, Tier: TierSuburb, BeachDistanceKm: 5.0},
	{Name: "Pangappara", Coords: geo.Coordinates{Lat: 8.5523, Lng: 76.9012}, Tier: TierSuburb, BeachDistanceKm: 6.0},
	{Name: "Pappanamcode", Coords: geo.Coordinates{Lat: 8.5578, Lng: 76.9123}, Tier: TierTech, BeachDistanceKm: 8.0},
	{Name: "Pattom", Coords: geo.Coordinates{Lat: 8.5147, Lng: 76.9470}, Tier: TierPremium, BeachDistanceKm: 6.5},
	{Name: "Peroorkada", Coords: geo.Coordinates{Lat: 8.5412, Lng: 76.9989}, Tier: TierSuburb, BeachDistanceKm: 9.0},
	{Name: "Pettah", Coords: geo.Coordinates{Lat: 8.5134, Lng: 76.9534}, Tier: TierCity, BeachDistanceKm: 4.0},
	{Name: "Peyad", Coords: geo.Coordinates{Lat: 8.6156, Lng: 77.0234}, Tier: TierSuburb, BeachDistanceKm: 12.0},
	{Name: "Pongumoodu", Coords: geo.Coordinates{Lat: 8.5234, Lng: 76.9456}, Tier: TierSuburb, BeachDistanceKm: 7.0},
	{Name: "Poojappura", Coords: geo.Coordinates{Lat: 8.5167, Lng: 76.9734}, Tier: TierCity, BeachDistanceKm: 8.0},
	{Name: "Pothencode", Coords: geo.Coordinates{Lat: 8.6812, Lng: 76.9445}, Tier: TierSuburb, BeachDistanceKm: 14.0},
	{Name: "Powdikonam", Coords: geo.Coordinates{Lat: 8.5789, Lng: 76.9823}, Tier: TierSuburb, BeachDistanceKm: 11.0},
	{Name: "Pravachambalam", Coords: geo.Coordinates{Lat: 8.5523, Lng: 77.0012}, Tier: TierSuburb, BeachDistanceKm: 11.0},
	{Name: "Pulayanarkotta", Coords: geo.Coordinates{Lat: 8.5334, Lng: 76.9234}, Tier: TierSuburb, BeachDistanceKm: 4.0},
	{Name: "Sasthamangalam", Coords: geo.Coordinates{Lat: 8.5412, Lng: 76.9445}, Tier: TierPremium, BeachDistanceKm: 8.0},
	{Name: "Shangumugham", Coords: geo.Coordinates{Lat: 8.4723, Lng: 76.9201}, Tier: TierSuburb, BeachDistanceKm: 0.2},
	{Name: "Sreekaryam", Coords: geo.Coordinates{Lat: 8.5712, Lng: 76.9023}, Tier: TierTech, BeachDistanceKm: 7.0},
	{Name: "St. Andrews", Coords: geo.Coordinates{Lat: 8.4834, Lng: 76.9178}, Tier: TierSuburb, BeachDistanceKm: 0.3},
	{Name: "Statue", Coords: geo.Coordinates{Lat: 8.4934, Lng: 76.9456}, Tier: TierCity, BeachDistanceKm: 5.0},
	{Name: "Technocity", Coords: geo.Coordinates{Lat: 8.5456, Lng: 76.8934}, Tier: TierTech, BeachDistanceKm: 6.0},
	{Name: "Technopark Area", Coords: geo.Coordinates{Lat: 8.5473, Lng: 76.9012}, Tier: TierTech, BeachDistanceKm: 3.0},
	{Name: "Thampanoor", Coords: geo.Coordinates{Lat: 8.4901, Lng: 76.9534}, Tier: TierCity, BeachDistanceKm: 5.0},
	{Name: "Thirumala", Coords: geo.Coordinates{Lat: 8.5623, Lng: 76.9823}, Tier: TierSuburb, BeachDistanceKm: 10.0},
	{Name: "Thiruvallam", Coords: geo.Coordinates{Lat: 8.5334, Lng: 76.9123}, Tier: TierSuburb, BeachDistanceKm: 5.0},
	{Name: "Thumba", Coords: geo.Coordinates{Lat: 8.5334, Lng: 76.8812}, Tier: TierSuburb, BeachDistanceKm: 0.5},
	{Name: "Ulloor", Coords: geo.Coordinates{Lat: 8.5456, Lng: 76.9445}, Tier: TierCity, BeachDistanceKm: 6.5},
	{Name: "Vanchiyoor", Coords: geo.Coordinates{Lat: 8.4967, Lng: 76.9512}, Tier: TierCity, BeachDistanceKm: 4.5},
	{Name: "Varkala", Coords: geo.Coordinates{Lat: 8.7380, Lng: 76.7160}, Tier: TierSuburb, BeachDistanceKm: 1.0},
	{Name: "Vattiyoorkavu", Coords: geo.Coordinates{Lat: 8.5567, Lng: 77.0056}, Tier: TierSuburb, BeachDistanceKm: 10.0},
	{Name: "Vazhuthacaud", Coords: geo.Coordinates{Lat: 8.5089, Lng: 76.9567}, Tier: TierPremium, BeachDistanceKm: 6.5},
	{Name: "Veli", Coords: geo.Coordinates{Lat: 8.4823, Lng: 76.9156}, Tier: TierSuburb, BeachDistanceKm: 0.5},
	{Name: "Vellayambalam", Coords: geo.Coordinates{Lat: 8.5178, Lng: 76.9489}, Tier: TierPremium, BeachDistanceKm: 7.0},
	{Name: "Vellayani", Coords: geo.Coordinates{Lat: 8.4345, Lng: 77.0012}, Tier: TierSuburb, BeachDistanceKm: 8.0},
	{Name: "Venjaramoodu", Coords: geo.Coordinates{Lat: 8.6789, Lng: 77.0623}, Tier: TierSuburb, BeachDistanceKm: 22.0},
	{Name: "Vizhinjam", Coords: geo.Coordinates{Lat: 8.3801, Lng: 76.9890}, Tier: TierSuburb, BeachDistanceKm: 0.5},
}

var schools = []Place{
	{Name: "Loyola School", Coords: geo.Coordinates{Lat: 8.5123, Lng: 76.9551}},
	{Name: "Holy Angels ISC School", Coords: geo.Coordinates{Lat: 8.5234, Lng: 76.9478}},
	{Name: "Kendriya Vidyalaya Pattom", Coords: geo.Coordinates{Lat: 8.5167, Lng: 76.9489}},
	{Name: "Sarvodaya Vidyalaya", Coords: geo.Coordinates{Lat: 8.5089, Lng: 76.9534}},
	{Name: "St. Joseph's School", Coords: geo.Coordinates{Lat: 8.5045, Lng: 76.9623}},
	{Name: "Chinmaya Vidyalaya", Coords: geo.Coordinates{Lat: 8.5456, Lng: 76.9423}},
	{Name: "Govt. Model School Kovalam", Coords: geo.Coordinates{Lat: 8.4050, Lng: 76.9750}},
	{Name: "Vizhinjam Public School", Coords: geo.Coordinates{Lat: 8.3820, Lng: 76.9900}},
	{Name: "Technopark Public School", Coords: geo.Coordinates{Lat: 8.5550, Lng: 76.8800}},
	{Name: "Oxford School Kazhakkoottam", Coords: geo.Coordinates{Lat: 8.5650, Lng: 76.8750}},
	{Name: "Kendriya Vidyalaya Peroorkada", Coords: geo.Coordinates{Lat: 8.5450, Lng: 76.9700}},
	{Name: "NSS School Nedumangad", Coords: geo.Coordinates{Lat: 8.6050, Lng: 77.0050}},
}

var hospitals = []Place{
	{Name: "SIMS Hospital", Coords: geo.Coordinates{Lat: 8.5167, Lng: 76.9523}},
	{Name: "KIMS Hospital", Coords: geo.Coordinates{Lat: 8.5123, Lng: 76.9456}},
	{Name: "Meditrina Hospital", Coords: geo.Coordinates{Lat: 8.5234, Lng: 76.9512}},
	{Name: "Baby Memorial Hospital", Coords: geo.Coordinates{Lat: 8.5045, Lng: 76.9589}},
	{Name: "SCTIMST", Coords: geo.Coordinates{Lat: 8.5345, Lng: 76.9712}},
	{Name: "Cosmopolitan Hospital", Coords: geo.Coordinates{Lat: 8.5456, Lng: 76.9623}},
	{Name: "Upasana Hospital Kovalam", Coords: geo.Coordinates{Lat: 8.4100, Lng: 76.9800}},
	{Name: "Govt. Hospital Vizhinjam", Coords: geo.Coordinates{Lat: 8.3850, Lng: 76.9920}},
	{Name: "KIMS Kazhakkoottam", Coords: geo.Coordinates{Lat: 8.5600, Lng: 76.8800}},
	{Name: "Govt. Hospital Nedumangad", Coords: geo.Coordinates{Lat: 8.6000, Lng: 77.0000}},
	{Name: "PRS Hospital", Coords: geo.Coordinates{Lat: 8.5400, Lng: 76.9800}},
}

