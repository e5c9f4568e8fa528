package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "JobJumper-backend/internal/model"
	"JobJumper-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & fixtures
var (
	TestUserSeeker1 m.User
	TestUserSeeker2 m.User

	// Shared plain password for all seeded users
	TestSeedPassword = "SeedPass123!"

	// Exported seeded job records (owned by TestUserSeeker1)
	TestJob1 m.Job
	TestJob2 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts two seeker accounts with profiles and a couple of
// job records if the database is empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	email1, email2 := ptr("seeker1@example.com"), ptr("seeker2@example.com")
	users := []m.User{
		{
			ID:               uuid.New(),
			Username:         "job_seeker_1",
			Password:         hashedPwd,
			Role:             m.RoleUser,
			EditableUserInfo: m.EditableUserInfo{Email: email1},
		},
		{
			ID:               uuid.New(),
			Username:         "job_seeker_2",
			Password:         hashedPwd,
			Role:             m.RoleUser,
			EditableUserInfo: m.EditableUserInfo{Email: email2},
		},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestUserSeeker1 = users[0]
	TestUserSeeker2 = users[1]

	profiles := []m.Profile{
		m.DefaultProfile(TestUserSeeker1.ID),
		m.DefaultProfile(TestUserSeeker2.ID),
	}
	if err := db.Create(&profiles).Error; err != nil {
		return err
	}

	jobs := []m.Job{
		{
			UserID: TestUserSeeker1.ID,
			EditableJobInfo: m.EditableJobInfo{
				Company:  "TechNova",
				Role:     "Backend Engineer",
				Status:   m.JobStatusApplied,
				Origin:   m.JobOriginApplication,
				Location: "Remote",
				Salary:   "90000 USD",
			},
		},
		{
			UserID: TestUserSeeker1.ID,
			EditableJobInfo: m.EditableJobInfo{
				Company:  "DataForge",
				Role:     "Data Engineer",
				Status:   m.JobStatusInterview,
				Origin:   m.JobOriginApplication,
				Location: "Berlin (Hybrid)",
				Salary:   "70000 EUR",
			},
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJob1 = jobs[0]
	TestJob2 = jobs[1]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("username IN ?", []string{"job_seeker_1", "job_seeker_2"}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Username {
		case "job_seeker_1":
			TestUserSeeker1 = u
		case "job_seeker_2":
			TestUserSeeker2 = u
		}
	}

	var jobs []m.Job
	if err := db.Where("user_id = ?", TestUserSeeker1.ID).Order("id ASC").Limit(2).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
	}

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
