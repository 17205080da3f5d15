package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "user":
		handleUser(args)
	case "position":
		handlePosition(args)
	case "applicant":
		handleApplicant(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: recruitdesk auth <register|login|logout|me>")
		return
	}

	switch args[0] {
	case "register":
		registerCompany(args[1:])
	case "login":
		login(args[1:])
	case "logout":
		logout()
	case "me":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", args[0])
	}
}

func handleUser(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: recruitdesk user <list|create|delete>")
		return
	}

	switch args[0] {
	case "list":
		listUsers()
	case "create":
		createUser(args[1:])
	case "delete":
		deleteResource("users", args[1:], "recruitdesk user delete <user-id>")
	default:
		fmt.Printf("unknown user command: %s\n", args[0])
	}
}

func handlePosition(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: recruitdesk position <list|create|delete>")
		return
	}

	switch args[0] {
	case "list":
		listPositions()
	case "create":
		createPosition(args[1:])
	case "delete":
		deleteResource("positions", args[1:], "recruitdesk position delete <position-id>")
	default:
		fmt.Printf("unknown position command: %s\n", args[0])
	}
}

func handleApplicant(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: recruitdesk applicant <list|status|delete>")
		return
	}

	switch args[0] {
	case "list":
		listApplicants(args[1:])
	case "status":
		updateApplicantStatus(args[1:])
	case "delete":
		deleteResource("applicants", args[1:], "recruitdesk applicant delete <applicant-id>")
	default:
		fmt.Printf("unknown applicant command: %s\n", args[0])
	}
}

// Auth commands
func registerCompany(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	company := fs.String("company", "", "company name")
	name := fs.String("name", "", "admin full name")
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	phone := fs.String("phone", "", "company phone")

	fs.Parse(args)

	if *company == "" || *name == "" || *email == "" || *password == "" || *phone == "" {
		fmt.Println("Error: company, name, email, password, and phone are required")
		fs.PrintDefaults()
		return
	}

	result, status, err := post("/auth/register", map[string]string{
		"companyName": *company,
		"fullName":    *name,
		"email":       *email,
		"password":    *password,
		"phone":       *phone,
	}, false)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == http.StatusCreated {
		fmt.Printf("✓ Company registered: %s (admin %s)\n", *company, *email)
	} else {
		fmt.Printf("✗ Registration failed: %v\n", result)
	}
}

func login(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("Error: email and password are required")
		fs.PrintDefaults()
		return
	}

	result, status, err := post("/auth/login", map[string]string{
		"email":    *email,
		"password": *password,
	}, false)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status != http.StatusOK {
		fmt.Printf("✗ Login failed: %v\n", result)
		return
	}
	if data, ok := result["data"].(map[string]interface{}); ok {
		if token, ok := data["token"].(string); ok {
			saveToken(token)
			fmt.Printf("✓ Logged in as: %s\n", *email)
			return
		}
	}
	fmt.Printf("✗ Login response missing token: %v\n", result)
}

func logout() {
	os.Remove(tokenFile())
	fmt.Println("✓ Logged out")
}

func whoAmI() {
	result, status, err := get("/auth/me")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status != http.StatusOK {
		fmt.Printf("✗ Not logged in: %v\n", result)
		return
	}
	data, _ := result["data"].(map[string]interface{})
	fmt.Printf("✓ %v <%v> role=%v company=%v\n",
		data["fullName"], data["email"], data["role"], data["companyName"])
}

// User commands
func listUsers() {
	result, status, err := get("/users")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status != http.StatusOK {
		fmt.Printf("✗ Request failed: %v\n", result)
		return
	}

	items, _ := result["data"].([]interface{})
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
	for _, item := range items {
		u, _ := item.(map[string]interface{})
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", u["id"], u["fullName"], u["email"], u["role"])
	}
	w.Flush()
}

func createUser(args []string) {
	fs := flag.NewFlagSet("user create", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	role := fs.String("role", "RECRUITER", "role (ADMIN, RECRUITER, HR)")

	fs.Parse(args)

	if *name == "" || *email == "" || *password == "" {
		fmt.Println("Error: name, email, and password are required")
		fs.PrintDefaults()
		return
	}

	result, status, err := post("/users", map[string]string{
		"fullName": *name,
		"email":    *email,
		"password": *password,
		"role":     *role,
	}, true)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == http.StatusCreated {
		fmt.Printf("✓ User created: %s (%s)\n", *email, *role)
	} else {
		fmt.Printf("✗ Creation failed: %v\n", result)
	}
}

// Position commands
func listPositions() {
	result, status, err := get("/positions")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status != http.StatusOK {
		fmt.Printf("✗ Request failed: %v\n", result)
		return
	}

	items, _ := result["data"].([]interface{})
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tTYPE\tSALARY")
	for _, item := range items {
		p, _ := item.(map[string]interface{})
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", p["id"], p["title"], p["location"], p["type"], p["salary"])
	}
	w.Flush()
}

func createPosition(args []string) {
	fs := flag.NewFlagSet("position create", flag.ExitOnError)
	title := fs.String("title", "", "position title")
	location := fs.String("location", "", "location")
	jobType := fs.String("type", "FULL_TIME", "type (FULL_TIME, PART_TIME, CONTRACT, INTERN)")
	description := fs.String("description", "", "description")
	salary := fs.String("salary", "", "salary")

	fs.Parse(args)

	if *title == "" || *location == "" || *description == "" || *salary == "" {
		fmt.Println("Error: title, location, description, and salary are required")
		fs.PrintDefaults()
		return
	}

	result, status, err := post("/positions", map[string]string{
		"title":       *title,
		"location":    *location,
		"type":        *jobType,
		"description": *description,
		"salary":      *salary,
	}, true)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == http.StatusCreated {
		fmt.Printf("✓ Position created: %s\n", *title)
	} else {
		fmt.Printf("✗ Creation failed: %v\n", result)
	}
}

// Applicant commands
func listApplicants(args []string) {
	fs := flag.NewFlagSet("applicant list", flag.ExitOnError)
	position := fs.String("position", "", "filter by position id")
	fs.Parse(args)

	path := "/applicants"
	if *position != "" {
		path += "?positionId=" + *position
	}
	result, status, err := get(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status != http.StatusOK {
		fmt.Printf("✗ Request failed: %v\n", result)
		return
	}

	items, _ := result["data"].([]interface{})
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPOSITION\tSTATUS")
	for _, item := range items {
		a, _ := item.(map[string]interface{})
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", a["id"], a["fullName"], a["positionTitle"], a["status"])
	}
	w.Flush()
}

func updateApplicantStatus(args []string) {
	fs := flag.NewFlagSet("applicant status", flag.ExitOnError)
	id := fs.String("id", "", "applicant id")
	status := fs.String("status", "", "new status (APPLIED, REVIEWED, INTERVIEW, HIRED, REJECTED)")
	fs.Parse(args)

	if *id == "" || *status == "" {
		fmt.Println("Error: id and status are required")
		fs.PrintDefaults()
		return
	}

	data, _ := json.Marshal(map[string]string{"status": *status})
	req, _ := http.NewRequest(http.MethodPatch, getAPIURL()+"/applicants/"+*id+"/status", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == http.StatusOK {
		fmt.Printf("✓ Status updated: %s -> %s\n", *id, *status)
	} else {
		fmt.Printf("✗ Update failed: %v\n", result)
	}
}

func deleteResource(resource string, args []string, usage string) {
	if len(args) < 1 {
		fmt.Println("Usage: " + usage)
		return
	}

	req, _ := http.NewRequest(http.MethodDelete, getAPIURL()+"/"+resource+"/"+args[0], nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == http.StatusOK {
		fmt.Printf("✓ Deleted %s\n", args[0])
	} else {
		fmt.Printf("✗ Deletion failed: %v\n", result)
	}
}

// Helper functions
func post(path string, payload map[string]string, authed bool) (map[string]interface{}, int, error) {
	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, getAPIURL()+path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		addAuthHeader(req)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return result, resp.StatusCode, nil
}

func get(path string) (map[string]interface{}, int, error) {
	req, _ := http.NewRequest(http.MethodGet, getAPIURL()+path, nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return result, resp.StatusCode, nil
}

func getAPIURL() string {
	if url := os.Getenv("RECRUITDESK_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.recruitdesk/token"
}

func saveToken(token string) error {
	home, _ := os.UserHomeDir()
	os.MkdirAll(home+"/.recruitdesk", 0700)
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func loadToken() string {
	data, _ := os.ReadFile(tokenFile())
	return string(data)
}

func addAuthHeader(req *http.Request) {
	token := loadToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func printUsage() {
	fmt.Print(`RecruitDesk CLI

Usage:
  recruitdesk <command> [options]

Commands:
  auth       Authentication (register, login, logout, me)
  user       Staff user management (list, create, delete) - admin access required
  position   Job position management (list, create, delete)
  applicant  Applicant management (list, status, delete)
  help       Show this help message

Environment Variables:
  RECRUITDESK_API    API endpoint (default: http://localhost:8080/api)

Examples:
  recruitdesk auth register -company "Acme" -name "Ada Admin" -email ada@acme.com -password secret123 -phone 555-0100
  recruitdesk auth login -email ada@acme.com -password secret123
  recruitdesk position create -title "Backend Engineer" -location Remote -description "Build things" -salary 90000
  recruitdesk applicant list -position <position-id>
`)
}
