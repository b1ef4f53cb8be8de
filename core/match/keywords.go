package match

// jobSkillKeywords maps a skill, named the way folio reports it, to the
// phrases a job posting uses for it.
var jobSkillKeywords = map[string][]string{
	// Languages
	"Python":     {"python"},
	"Java":       {"java"},
	"JavaScript": {"javascript", "ecmascript"},
	"TypeScript": {"typescript"},
	"C":          {"c language", "embedded c", "ansi c"},
	"C++":        {"c++", "modern c++", "cpp"},
	"C#":         {"c#", "c sharp", "csharp"},
	"Go":         {"golang", "go language", "go developer", "go engineer", "written in go"},
	"Rust":       {"rust"},
	"PHP":        {"php"},
	"Ruby":       {"ruby"},
	"Swift":      {"swift", "ios swift"},
	"Kotlin":     {"kotlin", "android kotlin"},
	"SQL":        {"sql", "postgres", "postgresql", "mysql", "mariadb", "sql server", "oracle sql"},
	"Shell":      {"bash", "shell scripting", "shell script"},
	"PowerShell": {"powershell"},
	"HTML":       {"html", "html5"},
	"CSS":        {"css", "css3", "scss", "sass"},

	// Frameworks
	"React":         {"react", "react.js", "reactjs"},
	"Vue.js":        {"vue", "vue.js", "vuejs"},
	"Angular":       {"angular", "angular.js", "angularjs"},
	"Next.js":       {"next.js", "nextjs"},
	"Svelte":        {"svelte", "sveltekit"},
	"Node.js":       {"node", "node.js", "nodejs"},
	"Express":       {"express", "express.js"},
	"NestJS":        {"nestjs", "nest.js"},
	"Django":        {"django"},
	"Flask":         {"flask"},
	"FastAPI":       {"fastapi"},
	"Spring":        {"spring", "spring boot"},
	".NET":          {".net", "dotnet", "asp.net"},
	"Laravel":       {"laravel"},
	"Ruby on Rails": {"rails", "ruby on rails"},
	"GraphQL":       {"graphql"},
	"gRPC":          {"grpc"},
	"Flutter":       {"flutter"},
	"pandas":        {"pandas"},
	"NumPy":         {"numpy"},
	"TensorFlow":    {"tensorflow"},
	"PyTorch":       {"pytorch"},
	"Jest":          {"jest"},

	// Data and machine learning
	"Machine Learning": {"machine learning", "ml models", "ml engineer"},
	"Deep Learning":    {"deep learning", "neural network"},
	"Data Analysis":    {"data analysis", "data analyst", "data analytics"},
	"Data Engineering": {"data engineering", "etl pipelines", "etl"},
	"Jupyter":          {"jupyter", "notebooks"},

	// Storage
	"MongoDB":       {"mongodb"},
	"Redis":         {"redis"},
	"Elasticsearch": {"elasticsearch", "elastic search"},
	"NoSQL":         {"nosql", "document store"},

	// Cloud and devops
	"AWS":            {"aws", "amazon web services"},
	"Azure":          {"azure", "microsoft azure"},
	"GCP":            {"gcp", "google cloud"},
	"Docker":         {"docker", "containerization", "containers"},
	"Kubernetes":     {"kubernetes", "k8s"},
	"CI/CD":          {"ci/cd", "ci cd", "continuous integration", "continuous delivery"},
	"GitHub Actions": {"github actions"},
	"Terraform":      {"terraform", "infrastructure as code"},
	"Make":           {"makefile", "gnu make"},
	"Linux":          {"linux"},
	"Kafka":          {"kafka", "apache kafka"},

	// Practices
	"Unit Testing":  {"unit testing", "unit tests"},
	"REST APIs":     {"rest api", "rest apis", "restful api", "restful apis", "rest services"},
	"Microservices": {"microservice", "microservices"},
	"Git":           {"git", "version control"},
	"Agile":         {"agile", "scrum", "kanban"},
}

// projectSkillAliases maps skills folio detects under another name onto a posting skill.
var projectSkillAliases = map[string]string{
	"Shell Scripting": "Shell",
	"SQL Databases":   "SQL",
	"Spring Boot":     "Spring",
}

var companyValueKeywords = map[string][]string{
	"innovation":        {"innovative", "innovation", "cutting-edge", "disruptive", "forward thinking", "pushing boundaries"},
	"customer_focus":    {"customer obsessed", "customer-obsessed", "customer focused", "customer first", "user first", "customer centric"},
	"diversity":         {"diverse", "diversity", "inclusion", "inclusive", "equity", "belonging", "equal opportunity"},
	"ownership":         {"ownership", "owner mindset", "act like an owner", "accountability", "own your work"},
	"learning":          {"continuous learning", "continuous improvement", "growth mindset", "curiosity", "learning culture"},
	"collaboration":     {"collaborative", "cross functional", "cross-functional", "teamwork", "work closely with"},
	"impact":            {"make an impact", "impactful work", "meaningful work", "mission driven"},
	"integrity":         {"integrity", "ethical", "ethics", "honesty", "do the right thing", "transparent"},
	"sustainability":    {"sustainability", "sustainable", "environmental", "climate"},
	"excellence":        {"excellence", "high standards", "raise the bar", "world class", "best in class"},
	"results_oriented":  {"results oriented", "results driven", "deliver results", "outcome focused"},
	"work_life_balance": {"work life balance", "work-life balance", "wellbeing", "well being", "flexible time off"},
}

var workStyleKeywords = map[string][]string{
	"remote":         {"remote", "work from home", "fully remote", "remote first", "distributed team"},
	"hybrid":         {"hybrid", "partly remote", "few days in office"},
	"onsite":         {"on-site", "on site", "in office", "office based", "relocation required"},
	"fast_paced":     {"fast-paced", "fast paced", "high growth", "rapidly growing", "dynamic environment"},
	"agile":          {"agile environment", "scrum", "kanban", "sprint planning", "stand ups"},
	"collaborative":  {"cross functional teams", "pair programming", "collaborative culture"},
	"mentorship":     {"mentorship", "mentor", "coaching", "buddy program"},
	"data_driven":    {"data driven", "metrics driven", "evidence based"},
	"flexible_hours": {"flexible hours", "flexible schedule", "flex time", "core hours"},
}

var softSkillKeywords = map[string][]string{
	"teamwork":        {"teamwork", "team player", "collaboration", "collaborative"},
	"communication":   {"strong communication", "communication skills", "communicator"},
	"ownership":       {"ownership", "takes initiative", "self starter", "self-starter"},
	"leadership":      {"leadership", "mentor", "coaching"},
	"problem solving": {"problem solving", "problem-solving", "analytical", "critical thinking"},
	"adaptability":    {"fast paced environment", "adaptable", "fast-paced"},
	"quality mindset": {"best practices", "clean code", "testing culture", "quality focused"},
}
