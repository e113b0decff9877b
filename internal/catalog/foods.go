package catalog

// defaultEntries is the built-in food table. Macros are per 100 g.
var defaultEntries = []Entry{
	{Name: "Avena", KcalPer100g: 379, ProteinPer100g: 13.2, CarbsPer100g: 67.7, FatPer100g: 6.5,
		OverallWeight: 0.8, SlotWeights: map[string]float64{"desayuno": 1.0, "merienda": 0.4}},
	{Name: "Plátano", KcalPer100g: 89, ProteinPer100g: 1.1, CarbsPer100g: 22.8, FatPer100g: 0.3,
		OverallWeight: 0.9, SlotWeights: map[string]float64{"desayuno": 0.8, "media_manana": 0.9, "merienda": 0.8}},
	{Name: "Yogur natural", KcalPer100g: 61, ProteinPer100g: 3.5, CarbsPer100g: 4.7, FatPer100g: 3.3,
		OverallWeight: 0.8, SlotWeights: map[string]float64{"desayuno": 0.9, "media_manana": 0.7, "merienda": 0.9, "cena": 0.3}},
	{Name: "Manzana", KcalPer100g: 52, ProteinPer100g: 0.3, CarbsPer100g: 13.8, FatPer100g: 0.2,
		OverallWeight: 0.9, SlotWeights: map[string]float64{"desayuno": 0.5, "media_manana": 1.0, "merienda": 1.0}},
	{Name: "Pan integral", KcalPer100g: 247, ProteinPer100g: 13.0, CarbsPer100g: 41.0, FatPer100g: 3.4,
		OverallWeight: 0.9, SlotWeights: map[string]float64{"desayuno": 0.9, "media_manana": 0.6, "comida": 0.4, "merienda": 0.5, "cena": 0.4}},
	{Name: "Huevo", KcalPer100g: 155, ProteinPer100g: 13.0, CarbsPer100g: 1.1, FatPer100g: 11.0,
		OverallWeight: 0.8, SlotWeights: map[string]float64{"desayuno": 0.7, "cena": 0.8}},
	{Name: "Queso fresco", KcalPer100g: 174, ProteinPer100g: 12.0, CarbsPer100g: 3.0, FatPer100g: 13.0,
		OverallWeight: 0.6, SlotWeights: map[string]float64{"desayuno": 0.6, "media_manana": 0.5, "merienda": 0.6, "cena": 0.4}},
	{Name: "Frutos secos", KcalPer100g: 607, ProteinPer100g: 20.0, CarbsPer100g: 21.0, FatPer100g: 54.0,
		OverallWeight: 0.5, SlotWeights: map[string]float64{"media_manana": 0.8, "merienda": 0.7}},
	{Name: "Leche semidesnatada", KcalPer100g: 46, ProteinPer100g: 3.2, CarbsPer100g: 4.8, FatPer100g: 1.6,
		OverallWeight: 0.7, SlotWeights: map[string]float64{"desayuno": 1.0, "merienda": 0.6}},
	{Name: "Pollo", KcalPer100g: 165, ProteinPer100g: 31.0, CarbsPer100g: 0, FatPer100g: 3.6,
		OverallWeight: 1.0, SlotWeights: map[string]float64{"comida": 1.0, "cena": 0.8}},
	{Name: "Arroz", KcalPer100g: 350, ProteinPer100g: 7.0, CarbsPer100g: 78.0, FatPer100g: 0.6,
		OverallWeight: 0.9, SlotWeights: map[string]float64{"comida": 1.0, "cena": 0.5}},
	{Name: "Pasta", KcalPer100g: 371, ProteinPer100g: 13.0, CarbsPer100g: 75.0, FatPer100g: 1.5,
		OverallWeight: 0.8, SlotWeights: map[string]float64{"comida": 0.9, "cena": 0.3}},
	{Name: "Lentejas", KcalPer100g: 116, ProteinPer100g: 9.0, CarbsPer100g: 20.0, FatPer100g: 0.4,
		OverallWeight: 0.7, SlotWeights: map[string]float64{"comida": 0.8}},
	{Name: "Pescado", KcalPer100g: 122, ProteinPer100g: 22.0, CarbsPer100g: 0, FatPer100g: 3.5,
		OverallWeight: 0.8, SlotWeights: map[string]float64{"comida": 0.7, "cena": 1.0}},
	{Name: "Ternera", KcalPer100g: 217, ProteinPer100g: 26.0, CarbsPer100g: 0, FatPer100g: 12.0,
		OverallWeight: 0.6, SlotWeights: map[string]float64{"comida": 0.8, "cena": 0.4}},
	{Name: "Patata", KcalPer100g: 77, ProteinPer100g: 2.0, CarbsPer100g: 17.0, FatPer100g: 0.1,
		OverallWeight: 0.8, SlotWeights: map[string]float64{"comida": 0.8, "cena": 0.6}},
	{Name: "Ensalada verde", KcalPer100g: 20, ProteinPer100g: 1.4, CarbsPer100g: 3.0, FatPer100g: 0.2,
		OverallWeight: 0.7, SlotWeights: map[string]float64{"comida": 0.7, "cena": 0.9}},
	{Name: "Verduras al vapor", KcalPer100g: 35, ProteinPer100g: 2.0, CarbsPer100g: 7.0, FatPer100g: 0.3,
		OverallWeight: 0.7, SlotWeights: map[string]float64{"comida": 0.6, "cena": 0.9}},
	{Name: "Aceite de oliva", KcalPer100g: 884, ProteinPer100g: 0, CarbsPer100g: 0, FatPer100g: 100.0,
		OverallWeight: 0.4, SlotWeights: map[string]float64{"comida": 0.5, "cena": 0.5}},
	{Name: "Tortilla francesa", KcalPer100g: 154, ProteinPer100g: 11.0, CarbsPer100g: 0.6, FatPer100g: 12.0,
		OverallWeight: 0.5, SlotWeights: map[string]float64{"cena": 0.7}},
}
