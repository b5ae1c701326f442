package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/timemachine-api/internal/config"
)

// Сидер наполняет пустую базу стартовыми данными: администратором,
// четырьмя демонстрационными вехами с вопросами и материалами.
// Повторный запуск на заполненной базе ничего не меняет.
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	if err := seedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seedSampleData(db); err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}

	log.Println("[Seed] База данных успешно наполнена")
}

// seedAdmin создает администратора, если в базе еще нет ни одного
func seedAdmin(db *sql.DB) error {
	var adminID int
	err := db.QueryRow("SELECT id FROM users WHERE role = 'admin' LIMIT 1").Scan(&adminID)
	if err == nil {
		log.Println("[Seed] Администратор уже существует, пропускаем")
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@timemachine.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "ChangeMe123!"
		log.Println("[Seed] ВНИМАНИЕ: используется пароль администратора по умолчанию, смените его после первого входа")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		`INSERT INTO users (email, password, full_name, secondary_school, secondary_level, role)
		 VALUES ($1, $2, $3, $4, $5, 'admin')`,
		adminEmail, string(hashed), "System Administrator", "NUS", "Admin",
	)
	if err != nil {
		return err
	}

	log.Printf("[Seed] Администратор %s создан", adminEmail)
	return nil
}

// seedSampleData вставляет демонстрационные вехи, вопросы и материалы
func seedSampleData(db *sql.DB) error {
	var milestoneCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM milestones").Scan(&milestoneCount); err != nil {
		return err
	}
	if milestoneCount > 0 {
		log.Println("[Seed] Демонстрационные данные уже существуют, пропускаем")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	milestones := []struct {
		title       string
		year        int
		description string
		mediaURL    string
		markerID    string
	}{
		{
			"SoC Establishment", 2001,
			"The School of Computing was officially established as part of the National University of Singapore, marking the beginning of formal computer science education in Singapore.",
			"https://images.unsplash.com/photo-1562774053-701939374585?w=800",
			"SOC_2001",
		},
		{
			"First PhD Graduates", 2005,
			"SoC produced its first batch of PhD graduates, establishing itself as a research powerhouse in Southeast Asia.",
			"https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=800",
			"PHD_2005",
		},
		{
			"New SoC Building", 2012,
			"The iconic SoC building was completed, providing state-of-the-art facilities for students and faculty.",
			"https://images.unsplash.com/photo-1498243691581-b145c3f54a5a?w=800",
			"BUILDING_2012",
		},
		{
			"AI Research Center", 2020,
			"Launch of the dedicated AI research center, focusing on machine learning and artificial intelligence applications.",
			"https://images.unsplash.com/photo-1555255707-c07966088b7b?w=800",
			"AI_2020",
		},
	}

	milestoneIDs := make([]int, 0, len(milestones))
	for _, m := range milestones {
		var id int
		err := tx.QueryRow(
			`INSERT INTO milestones (title, year, description, media_url, marker_id)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			m.title, m.year, m.description, m.mediaURL, m.markerID,
		).Scan(&id)
		if err != nil {
			return err
		}
		milestoneIDs = append(milestoneIDs, id)
	}

	quizzes := []struct {
		milestoneIdx  int
		question      string
		correctAnswer string
		wrongAnswers  [3]string
	}{
		{0, "When was the School of Computing officially established?",
			"2001", [3]string{"2000", "2002", "1999"}},
		{1, "What significant academic achievement occurred in 2005?",
			"First PhD graduates", [3]string{"First undergraduate program", "First research paper", "First international collaboration"}},
		{2, "What major infrastructure development happened in 2012?",
			"New SoC building completion", [3]string{"New library opening", "New parking lot", "New cafeteria"}},
		{3, "Which research center was launched in 2020?",
			"AI Research Center", [3]string{"Cybersecurity Center", "Data Science Lab", "Robotics Institute"}},
	}

	for _, q := range quizzes {
		_, err := tx.Exec(
			`INSERT INTO quizzes (milestone_id, question, correct_answer, wrong_answer_1, wrong_answer_2, wrong_answer_3)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			milestoneIDs[q.milestoneIdx], q.question, q.correctAnswer,
			q.wrongAnswers[0], q.wrongAnswers[1], q.wrongAnswers[2],
		)
		if err != nil {
			return err
		}
	}

	resources := []struct {
		milestoneIdx int
		resourceType string
		title        string
		description  string
		url          string
		content      string
		displayOrder int
	}{
		{0, "article", "History of SoC",
			"Learn about the founding and early years of the School of Computing",
			"https://www.comp.nus.edu.sg/about/our-history/", "", 1},
		{0, "text", "Founding Vision",
			"The vision behind establishing SoC", "",
			"The School of Computing was established with the vision of becoming a leading center for computing education and research in Asia. The founding members aimed to create an institution that would bridge theoretical computer science with practical applications.", 2},
	}

	for _, r := range resources {
		_, err := tx.Exec(
			`INSERT INTO resources (milestone_id, resource_type, title, description, url, content, display_order, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)`,
			milestoneIDs[r.milestoneIdx], r.resourceType, r.title, r.description, r.url, r.content, r.displayOrder,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("[Seed] Вставлено вех: %d, вопросов: %d, материалов: %d", len(milestones), len(quizzes), len(resources))
	return nil
}
