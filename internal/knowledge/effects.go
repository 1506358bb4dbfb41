package knowledge

// DefaultEffects is the fixed in-memory scientific-effects catalog. Order is
// significant: search and lookup results preserve catalog order before
// relevance sorting.
var DefaultEffects = []Effect{
	{
		ID:          "thermal_expansion",
		Name:        "Thermal Expansion",
		Description: "Materials expand when heated and contract when cooled",
		Category:    "Thermal",
		Applications: []string{
			"Bi-metal strips in thermostats",
			"Expansion joints in bridges",
			"Shrink-fit assembly",
		},
		RelatedPrinciples: []int{37, 15, 35},
		TechnicalDomains:  []string{"Mechanical", "Civil", "Manufacturing"},
	},
	{
		ID:          "shape_memory",
		Name:        "Shape Memory Effect",
		Description: "Certain alloys return to their original shape when heated",
		Category:    "Material Science",
		Applications: []string{
			"Shape memory stents",
			"Self-deploying structures",
			"Temperature-activated fasteners",
		},
		RelatedPrinciples: []int{35, 15, 25},
		TechnicalDomains:  []string{"Medical", "Aerospace", "Robotics"},
	},
	{
		ID:          "piezoelectric",
		Name:        "Piezoelectric Effect",
		Description: "Materials generate electricity when mechanically stressed",
		Category:    "Electrical",
		Applications: []string{
			"Quartz watches",
			"Ultrasonic transducers",
			"Energy harvesting from vibration",
		},
		RelatedPrinciples: []int{15, 18, 23},
		TechnicalDomains:  []string{"Electronics", "Sensors", "Energy"},
	},
	{
		ID:          "electrochromic",
		Name:        "Electrochromic Effect",
		Description: "Materials change color when electric voltage is applied",
		Category:    "Optical",
		Applications: []string{
			"Smart windows",
			"Anti-glare mirrors",
			"Display technologies",
		},
		RelatedPrinciples: []int{32, 35, 16},
		TechnicalDomains:  []string{"Architecture", "Automotive", "Displays"},
	},
	{
		ID:          "superconductivity",
		Name:        "Superconductivity",
		Description: "Zero electrical resistance at very low temperatures",
		Category:    "Electrical",
		Applications: []string{
			"MRI machines",
			"Maglev trains",
			"Power transmission",
		},
		RelatedPrinciples: []int{36, 2, 12},
		TechnicalDomains:  []string{"Medical", "Transportation", "Energy"},
	},
	{
		ID:          "aerogel",
		Name:        "Aerogel Properties",
		Description: "Extremely low density solid with excellent insulation properties",
		Category:    "Material Science",
		Applications: []string{
			"Thermal insulation",
			"Acoustic damping",
			"Lightweight structures",
		},
		RelatedPrinciples: []int{31, 8, 40},
		TechnicalDomains:  []string{"Aerospace", "Construction", "Energy"},
	},
	{
		ID:          "sonoluminescence",
		Name:        "Sonoluminescence",
		Description: "Light emission from collapsing bubbles in liquid under sound waves",
		Category:    "Acoustic",
		Applications: []string{
			"Sonochemistry",
			"Medical imaging",
			"Cleaning technologies",
		},
		RelatedPrinciples: []int{18, 31, 16},
		TechnicalDomains:  []string{"Chemistry", "Medical", "Industrial"},
	},
	{
		ID:          "capillary_action",
		Name:        "Capillary Action",
		Description: "Liquid movement through narrow spaces against gravity",
		Category:    "Fluid",
		Applications: []string{
			"Wick in candles",
			"Plant root systems",
			"Porous media flow",
		},
		RelatedPrinciples: []int{31, 17, 29},
		TechnicalDomains:  []string{"Chemical", "Agricultural", "Materials"},
	},
	{
		ID:          "thermoelectric",
		Name:        "Thermoelectric Effect",
		Description: "Direct conversion between temperature differences and electric voltage",
		Category:    "Electrical",
		Applications: []string{
			"Waste heat recovery",
			"Temperature sensors",
			"Portable refrigerators",
		},
		RelatedPrinciples: []int{22, 23, 35},
		TechnicalDomains:  []string{"Energy", "Sensors", "Electronics"},
	},
	{
		ID:          "magnetorheological",
		Name:        "Magnetorheological Effect",
		Description: "Fluids change viscosity in magnetic fields",
		Category:    "Material Science",
		Applications: []string{
			"Adaptive shock absorbers",
			"Clutches and brakes",
			"Seismic dampers",
		},
		RelatedPrinciples: []int{15, 35, 16},
		TechnicalDomains:  []string{"Automotive", "Civil", "Robotics"},
	},
}
