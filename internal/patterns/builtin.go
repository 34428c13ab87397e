package patterns

// Builtin returns a registry preloaded with the bundled framework,
// technology, infrastructure and architecture signatures.
func Builtin() *Registry {
	r := NewRegistry()
	for _, def := range builtinDefinitions {
		r.Register(def)
	}
	return r
}

var builtinDefinitions = []Definition{
	// Web and application frameworks.
	{
		Name:            "React",
		Category:        CategoryFramework,
		Description:     "React web UI framework",
		Patterns:        []string{`from ['"]react['"]`, `import\s+React`, `react-dom`, `use(State|Effect)\(`},
		VersionPatterns: []string{`"react"\s*:\s*"[~^]?([0-9][^"]*)"`},
	},
	{
		Name:            "Vue.js",
		Category:        CategoryFramework,
		Description:     "Vue.js web UI framework",
		Patterns:        []string{`from ['"]vue['"]`, `import\s+Vue`, `createApp\(`, `<template>`},
		VersionPatterns: []string{`"vue"\s*:\s*"[~^]?([0-9][^"]*)"`},
	},
	{
		Name:            "Angular",
		Category:        CategoryFramework,
		Description:     "Angular web UI framework",
		Patterns:        []string{`@angular/`, `@Component\(`, `@NgModule\(`},
		VersionPatterns: []string{`"@angular/core"\s*:\s*"[~^]?([0-9][^"]*)"`},
	},
	{
		Name:            "Express",
		Category:        CategoryFramework,
		Description:     "Express.js web server framework",
		Patterns:        []string{`require\(['"]express['"]\)`, `from ['"]express['"]`, `express\(\)`, `app\.(get|post|put|delete)\(`},
		VersionPatterns: []string{`"express"\s*:\s*"[~^]?([0-9][^"]*)"`},
	},
	{
		Name:            "Next.js",
		Category:        CategoryFramework,
		Description:     "Next.js React framework",
		Patterns:        []string{`from ['"]next`, `getServerSideProps`, `getStaticProps`},
		VersionPatterns: []string{`"next"\s*:\s*"[~^]?([0-9][^"]*)"`},
	},
	{
		Name:            "Django",
		Category:        CategoryFramework,
		Description:     "Django web framework",
		Patterns:        []string{`from django`, `import django`, `INSTALLED_APPS`, `urlpatterns`},
		VersionPatterns: []string{`(?i)django\s*==\s*([0-9][0-9.]*)`},
	},
	{
		Name:            "Flask",
		Category:        CategoryFramework,
		Description:     "Flask web micro-framework",
		Patterns:        []string{`from flask`, `Flask\(__name__\)`, `@app\.route`},
		VersionPatterns: []string{`(?i)flask\s*==\s*([0-9][0-9.]*)`},
	},
	{
		Name:            "FastAPI",
		Category:        CategoryFramework,
		Description:     "FastAPI web framework",
		Patterns:        []string{`from fastapi`, `FastAPI\(`, `@(app|router)\.(get|post|put|delete)`},
		VersionPatterns: []string{`(?i)fastapi\s*==\s*([0-9][0-9.]*)`},
	},
	{
		Name:            "Ruby on Rails",
		Category:        CategoryFramework,
		Description:     "Ruby on Rails web framework",
		Patterns:        []string{`Rails\.application`, `ActiveRecord::Base`, `ApplicationController`, `gem ['"]rails['"]`},
		VersionPatterns: []string{`gem ['"]rails['"],\s*['"][~> ]*([0-9][0-9.]*)`},
	},
	{
		Name:            "Spring Boot",
		Category:        CategoryFramework,
		Description:     "Spring Boot application framework",
		Patterns:        []string{`org\.springframework`, `@SpringBootApplication`, `@(RestController|Autowired)`},
		VersionPatterns: []string{`spring-boot[^0-9]*([0-9]+\.[0-9]+\.[0-9]+)`},
	},
	{
		Name:            "Phoenix",
		Category:        CategoryFramework,
		Description:     "Phoenix web framework",
		Patterns:        []string{`use Phoenix`, `defmodule \w+Web`, `:phoenix`},
		VersionPatterns: []string{`\{:phoenix,\s*"[~> ]*([0-9][0-9.]*)"`},
	},

	// Databases, stores and tooling.
	{
		Name:        "PostgreSQL",
		Category:    CategoryTechnology,
		Description: "PostgreSQL relational database",
		Patterns:    []string{`(?i)postgresql`, `psycopg`, `postgres://`},
	},
	{
		Name:        "MySQL",
		Category:    CategoryTechnology,
		Description: "MySQL relational database",
		Patterns:    []string{`(?i)mysql`, `pymysql`},
	},
	{
		Name:        "MongoDB",
		Category:    CategoryTechnology,
		Description: "MongoDB document database",
		Patterns:    []string{`(?i)mongodb`, `mongoose`, `mongodb(\+srv)?://`},
	},
	{
		Name:        "Redis",
		Category:    CategoryTechnology,
		Description: "Redis in-memory data store",
		Patterns:    []string{`(?i)redis`, `ioredis`, `redis://`},
	},
	{
		Name:        "GraphQL",
		Category:    CategoryTechnology,
		Description: "GraphQL API layer",
		Patterns:    []string{`(?i)graphql`, `type Query`, `useQuery\(`},
	},
	{
		Name:        "gRPC",
		Category:    CategoryTechnology,
		Description: "gRPC remote procedure calls",
		Patterns:    []string{`\bgrpc\b`, `protobuf`, `\.proto\b`},
	},
	{
		Name:        "Jest",
		Category:    CategoryTechnology,
		Description: "Jest test framework",
		Patterns:    []string{`\bjest\b`, `describe\(`, `to(Equal|Be)\(`},
	},
	{
		Name:        "Pytest",
		Category:    CategoryTechnology,
		Description: "Pytest test framework",
		Patterns:    []string{`(?i)pytest`, `def test_`, `assert `},
	},
	{
		Name:        "RSpec",
		Category:    CategoryTechnology,
		Description: "RSpec test framework",
		Patterns:    []string{`\brspec\b`, `describe .* do`, `expect\(.*\)\.to `},
	},
	{
		Name:        "Webpack",
		Category:    CategoryTechnology,
		Description: "Webpack build tool",
		Patterns:    []string{`webpack`, `webpack\.config`},
	},

	// Deployment and infrastructure.
	{
		Name:        "Docker",
		Category:    CategoryInfrastructure,
		Description: "Docker container build",
		Patterns:    []string{`(?m)^FROM [\w./:-]+`, `(?m)^(EXPOSE|ENTRYPOINT|WORKDIR) `, `docker-compose`},
	},
	{
		Name:        "Kubernetes",
		Category:    CategoryInfrastructure,
		Description: "Kubernetes manifests",
		Patterns:    []string{`apiVersion:`, `kind:\s*(Deployment|Service|Pod|ConfigMap)`, `kubectl`},
	},
	{
		Name:        "Terraform",
		Category:    CategoryInfrastructure,
		Description: "Terraform provisioning",
		Patterns:    []string{`(?m)^resource "`, `(?m)^provider "`, `terraform \{`},
	},
	{
		Name:        "GitHub Actions",
		Category:    CategoryInfrastructure,
		Description: "GitHub Actions workflow",
		Patterns:    []string{`runs-on:`, `uses: actions/`, `(?m)^on:`},
	},

	// Architecture markers.
	{
		Name:        "Microservices",
		Category:    CategoryArchitecture,
		Description: "Microservice architecture markers",
		Patterns:    []string{`(?i)microservice`, `api[-_]gateway`, `service[-_]mesh`},
	},
	{
		Name:        "Message Queue",
		Category:    CategoryArchitecture,
		Description: "Message queue integration",
		Patterns:    []string{`(?i)amqp|rabbitmq`, `(?i)kafka`, `\bnats\b`},
	},
}
