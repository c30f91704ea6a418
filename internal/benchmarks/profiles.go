package benchmarks

var profiles = []Profile{
	{
		ID:       "legal",
		Name:     "Legal & Compliance",
		Keywords: []string{"legal", "law", "compliance", "contract", "regulatory", "attorney", "paralegal", "litigation", "discovery", "document review"},
		Benchmarks: []Benchmark{
			{Category: "Document Review", Metric: "Time reduction in document review", LowPct: 60, HighPct: 75, Source: "McKinsey Global Institute, 2023", Year: 2023},
			{Category: "Contract Analysis", Metric: "Faster contract review cycles", LowPct: 50, HighPct: 70, Source: "Deloitte Legal Tech Survey, 2023", Year: 2023},
			{Category: "Research", Metric: "Legal research time savings", LowPct: 30, HighPct: 50, Source: "Thomson Reuters Institute, 2024", Year: 2024},
			{Category: "Compliance", Metric: "Regulatory monitoring efficiency", LowPct: 40, HighPct: 60, Source: "PwC Global Risk Survey, 2023", Year: 2023},
		},
		DefaultGainPct: 55,
	},
	{
		ID:       "manufacturing",
		Name:     "Manufacturing & Operations",
		Keywords: []string{"manufacturing", "production", "factory", "supply chain", "logistics", "warehouse", "quality", "assembly", "operations", "industrial"},
		Benchmarks: []Benchmark{
			{Category: "Labor Productivity", Metric: "Labor productivity improvement", LowPct: 7, HighPct: 20, Source: "Boston Consulting Group, 2024", Year: 2024},
			{Category: "Quality Control", Metric: "Defect detection improvement", LowPct: 25, HighPct: 40, Source: "McKinsey Operations Practice, 2023", Year: 2023},
			{Category: "Predictive Maintenance", Metric: "Downtime reduction", LowPct: 20, HighPct: 35, Source: "Deloitte AI in Manufacturing, 2023", Year: 2023},
			{Category: "Supply Chain", Metric: "Supply chain optimization", LowPct: 15, HighPct: 30, Source: "Gartner Supply Chain Report, 2024", Year: 2024},
		},
		DefaultGainPct: 20,
	},
	{
		ID:       "healthcare",
		Name:     "Healthcare & Life Sciences",
		Keywords: []string{"healthcare", "medical", "clinical", "patient", "hospital", "pharma", "biotech", "diagnosis", "treatment", "health"},
		Benchmarks: []Benchmark{
			{Category: "Clinical Documentation", Metric: "Documentation time savings", LowPct: 30, HighPct: 50, Source: "KLAS Research, 2024", Year: 2024},
			{Category: "Diagnosis Support", Metric: "Diagnostic accuracy improvement", LowPct: 10, HighPct: 25, Source: "Nature Medicine, 2023", Year: 2023},
			{Category: "Admin Burden", Metric: "Administrative task reduction", LowPct: 40, HighPct: 60, Source: "AMA Physician Practice Report, 2023", Year: 2023},
			{Category: "Drug Discovery", Metric: "Early-stage screening acceleration", LowPct: 30, HighPct: 50, Source: "McKinsey Life Sciences, 2024", Year: 2024},
		},
		DefaultGainPct: 35,
	},
	{
		ID:       "financial",
		Name:     "Financial Services",
		Keywords: []string{"finance", "banking", "insurance", "fintech", "trading", "investment", "risk", "underwriting", "claims", "audit"},
		Benchmarks: []Benchmark{
			{Category: "Risk Assessment", Metric: "Risk analysis speed improvement", LowPct: 30, HighPct: 50, Source: "Accenture Banking Report, 2024", Year: 2024},
			{Category: "Fraud Detection", Metric: "Fraud detection accuracy", LowPct: 20, HighPct: 40, Source: "McKinsey Financial Services, 2023", Year: 2023},
			{Category: "Underwriting", Metric: "Underwriting process acceleration", LowPct: 35, HighPct: 55, Source: "Deloitte Insurance Outlook, 2024", Year: 2024},
			{Category: "Reporting", Metric: "Regulatory reporting efficiency", LowPct: 40, HighPct: 60, Source: "PwC Financial Services, 2023", Year: 2023},
		},
		DefaultGainPct: 40,
	},
	{
		ID:       "saas",
		Name:     "SaaS & Technology",
		Keywords: []string{"saas", "software", "technology", "platform", "cloud", "api", "devops", "engineering", "developer", "it", "tech"},
		Benchmarks: []Benchmark{
			{Category: "Code Development", Metric: "Developer productivity gain", LowPct: 25, HighPct: 55, Source: "GitHub Copilot Impact Study, 2024", Year: 2024},
			{Category: "Support", Metric: "Customer support resolution speed", LowPct: 30, HighPct: 50, Source: "Zendesk CX Trends, 2024", Year: 2024},
			{Category: "QA & Testing", Metric: "Testing cycle time reduction", LowPct: 30, HighPct: 45, Source: "Forrester DevOps Report, 2023", Year: 2023},
			{Category: "Sales", Metric: "Sales pipeline efficiency", LowPct: 20, HighPct: 35, Source: "Salesforce State of Sales, 2024", Year: 2024},
		},
		DefaultGainPct: 35,
	},
	{
		ID:       "professional",
		Name:     "Professional Services",
		Keywords: []string{"consulting", "advisory", "accounting", "audit", "strategy", "management", "professional", "services", "agency"},
		Benchmarks: []Benchmark{
			{Category: "Research & Analysis", Metric: "Research and analysis time savings", LowPct: 30, HighPct: 50, Source: "McKinsey Global Institute, 2024", Year: 2024},
			{Category: "Report Generation", Metric: "Report creation acceleration", LowPct: 40, HighPct: 60, Source: "Deloitte Tech Trends, 2024", Year: 2024},
			{Category: "Client Communication", Metric: "Communication drafting speed", LowPct: 25, HighPct: 42, Source: "Harvard Business Review, 2023", Year: 2023},
			{Category: "Project Management", Metric: "Project admin overhead reduction", LowPct: 20, HighPct: 35, Source: "PMI Pulse of Profession, 2024", Year: 2024},
		},
		DefaultGainPct: 38,
	},
	{
		ID:       "general",
		Name:     "Cross-Industry / General",
		Keywords: []string{"general", "business", "enterprise", "organization", "company", "automation", "ai", "productivity"},
		Benchmarks: []Benchmark{
			{Category: "Knowledge Work", Metric: "Knowledge worker productivity", LowPct: 25, HighPct: 42, Source: "McKinsey Economic Potential of GenAI, 2023", Year: 2023},
			{Category: "Data Entry", Metric: "Data processing automation", LowPct: 50, HighPct: 70, Source: "Forrester AI Predictions, 2024", Year: 2024},
			{Category: "Communication", Metric: "Email/messaging time reduction", LowPct: 20, HighPct: 35, Source: "Microsoft Work Trend Index, 2024", Year: 2024},
			{Category: "Decision Making", Metric: "Decision-making speed improvement", LowPct: 15, HighPct: 30, Source: "Bain & Company AI Survey, 2024", Year: 2024},
		},
		DefaultGainPct: 30,
	},
}
