package templates

import (
	"strconv"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

func itoa(n int) string { return strconv.Itoa(n) }

func riskManagement() Template {
	roles := []storage.Role{
		{ID: "risk-gc", Label: "General Counsel", HourlyRate: 200},
		{ID: "risk-ra", Label: "Risk Analyst", HourlyRate: 100},
	}
	return build("Risk Management", "Model ROI for risk management software based on GRC workflow stages.", roles, []stageSpec{
		{name: "Identify Existing Risks", allocs: []alloc{{15, 60}, {20, 50}}, assumptions: "Current process involves manual spreadsheet reviews", rationale: "AI-powered risk scanning reduces manual identification time", people: 5, workflow: "Manual review of risk registers and documentation"},
		{name: "Workshops to Identify New Risks", allocs: []alloc{{10, 40}, {15, 30}}, assumptions: "Quarterly workshops with 8-10 stakeholders", rationale: "Pre-populated risk libraries accelerate workshop prep", people: 10, workflow: "Schedule, prepare, facilitate, and document workshops"},
		{name: "Create/Maintain Risk Register", allocs: []alloc{{20, 70}, {25, 60}}, assumptions: "Register maintained in Excel with manual updates", rationale: "Centralized platform with automated workflows", people: 3, workflow: "Manual data entry and cross-referencing"},
		{name: "Educate Risk Owners", allocs: []alloc{{8, 50}, {12, 40}}, assumptions: "Training sessions scheduled ad hoc", rationale: "Self-service training modules and automated reminders", people: 15, workflow: "Create training materials and schedule sessions"},
		{name: "Risk Assessment & Review", allocs: []alloc{{15, 65}, {20, 55}}, assumptions: "Annual assessment cycle with manual scoring", rationale: "Continuous monitoring with real-time dashboards", people: 8, workflow: "Collect data, score risks, compile reports"},
		{name: "Verify Risks (Monitor)", allocs: []alloc{{12, 70}, {18, 65}}, assumptions: "Monthly manual verification checks", rationale: "Automated monitoring with exception-based alerts", people: 4, workflow: "Manual checks against risk indicators"},
		{name: "Reporting", allocs: []alloc{{12, 80}, {15, 70}}, assumptions: "Manual Excel report creation for board presentations", rationale: "One-click automated report generation", people: 6, workflow: "Gather data, create charts, format reports"},
		{name: "Ad Hoc Requests", allocs: []alloc{{8, 50}, {6, 40}}, assumptions: "Unplanned requests disrupt regular workflow", rationale: "Self-service access reduces ad hoc burden", people: 5, workflow: "Respond to urgent requests from leadership"},
	})
}

func softwareROI() Template {
	roles := []storage.Role{
		{ID: "sw-pl", Label: "Project Lead", HourlyRate: 150},
		{ID: "sw-tm", Label: "Team Member", HourlyRate: 85},
	}
	return build("Software ROI", "Justify a software purchase by modeling efficiency gains across evaluation, implementation, training, support, and optimization.", roles, []stageSpec{
		{name: "Software Evaluation", allocs: []alloc{{10, 50}, {15, 40}}, assumptions: "Manual vendor comparison across multiple criteria", rationale: "Structured evaluation framework with scoring templates", people: 4, workflow: "Research vendors, schedule demos, compare features"},
		{name: "Implementation & Setup", allocs: []alloc{{20, 60}, {30, 55}}, assumptions: "Custom configuration and data migration required", rationale: "Pre-built templates and automated migration tools", people: 6, workflow: "Configure system, migrate data, set up integrations"},
		{name: "User Training", allocs: []alloc{{8, 45}, {20, 50}}, assumptions: "In-person training sessions with manual materials", rationale: "Interactive self-paced learning modules", people: 20, workflow: "Create training content, schedule sessions, track completion"},
		{name: "Ongoing Support", allocs: []alloc{{5, 55}, {15, 60}}, assumptions: "Manual ticket handling and troubleshooting", rationale: "AI-assisted support with knowledge base", people: 3, workflow: "Handle support tickets and escalations"},
		{name: "Optimization & Reporting", allocs: []alloc{{10, 65}, {12, 50}}, assumptions: "Manual data collection for usage reports", rationale: "Automated analytics dashboards", people: 4, workflow: "Collect metrics, analyze adoption, recommend improvements"},
	})
}

func processAutomation() Template {
	roles := []storage.Role{
		{ID: "pa-pe", Label: "Process Engineer", HourlyRate: 130},
		{ID: "pa-os", Label: "Operations Staff", HourlyRate: 75},
	}
	return build("Process Automation", "Calculate savings from automating manual workflows. Covers process mapping through continuous improvement.", roles, []stageSpec{
		{name: "Process Mapping", allocs: []alloc{{12, 45}, {18, 40}}, assumptions: "Manual documentation of current workflows", rationale: "Digital process mining and automated mapping", people: 5, workflow: "Interview stakeholders, document steps, identify bottlenecks"},
		{name: "Automation Development", allocs: []alloc{{15, 55}, {25, 50}}, assumptions: "Custom scripting and manual integration work", rationale: "Low-code automation builders with pre-built connectors", people: 4, workflow: "Design automation rules, build workflows, configure triggers"},
		{name: "Testing & Validation", allocs: []alloc{{8, 50}, {15, 45}}, assumptions: "Manual test cases and validation checks", rationale: "Automated testing frameworks with regression suites", people: 6, workflow: "Create test scenarios, execute tests, validate outputs"},
		{name: "Deployment & Rollout", allocs: []alloc{{5, 40}, {12, 35}}, assumptions: "Manual deployment with change management", rationale: "Automated deployment pipelines with rollback capability", people: 10, workflow: "Deploy changes, communicate updates, monitor adoption"},
		{name: "Monitoring & Maintenance", allocs: []alloc{{10, 65}, {15, 60}}, assumptions: "Manual monitoring and periodic reviews", rationale: "Real-time monitoring dashboards with automated alerts", people: 3, workflow: "Track performance, identify issues, apply fixes"},
		{name: "Continuous Improvement", allocs: []alloc{{8, 50}, {10, 45}}, assumptions: "Ad hoc improvement suggestions", rationale: "Data-driven optimization recommendations", people: 5, workflow: "Analyze metrics, propose improvements, implement changes"},
	})
}

func Builtin() []Template {
	return []Template{riskManagement(), softwareROI(), processAutomation()}
}
