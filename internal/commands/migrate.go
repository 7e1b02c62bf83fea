package commands

import (
	"fmt"
	"log"

	"workforce/backend/internal/pkg/repository/postgresql"
)

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('EMPLOYEE', 'ADMIN', 'DASHBOARD', 'QRCODE');`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            employee_id text not null,
            password text not null,
            role user_role,
            full_name text,
            phone varchar(255),
            email varchar(255),
            bank_account varchar(64),
            status boolean default false,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       3,
		Description: "Create admin with employee_id: Admin01, password: 1",
		Query: `
        INSERT INTO users(employee_id, role, password)
        SELECT 'Admin01', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT employee_id FROM users WHERE employee_id = 'Admin01');
        `,
	},
	{
		Index:       4,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id SERIAL PRIMARY KEY,
            employee_id VARCHAR NOT NULL,
            work_day DATE NOT NULL,
            come_time TIMESTAMPTZ NOT NULL,
            leave_time TIMESTAMPTZ,
            tag VARCHAR(16),
            status VARCHAR(16) DEFAULT 'PRESENT',
            duration_minutes INT,
            come_latitude FLOAT,
            come_longitude FLOAT,
            come_accuracy FLOAT,
            leave_latitude FLOAT,
            leave_longitude FLOAT,
            leave_accuracy FLOAT,
            device VARCHAR(255),
            photo_path VARCHAR(512),
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       5,
		Description: "Enforce the single open session per employee.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS attendance_open_session_idx
        ON attendance (employee_id)
        WHERE leave_time IS NULL AND deleted_at IS NULL;`,
	},
	{
		Index:       6,
		Description: "Create table: location_ping.",
		Query: `
        CREATE TABLE IF NOT EXISTS location_ping (
            id SERIAL PRIMARY KEY,
            attendance_id INT NOT NULL REFERENCES attendance(id),
            latitude FLOAT NOT NULL,
            longitude FLOAT NOT NULL,
            accuracy FLOAT,
            created_at TIMESTAMP DEFAULT NOW()
        );`,
	},
	{
		Index:       7,
		Description: "Create table: salary_profile.",
		Query: `
        CREATE TABLE IF NOT EXISTS salary_profile (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id),
            basic_salary FLOAT NOT NULL DEFAULT 0,
            housing_allowance FLOAT DEFAULT 0,
            transport_allowance FLOAT DEFAULT 0,
            other_allowance FLOAT DEFAULT 0,
            overtime_rate FLOAT DEFAULT 0,
            deduction FLOAT DEFAULT 0,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       8,
		Description: "Create table: payroll.",
		Query: `
        CREATE TABLE IF NOT EXISTS payroll (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id),
            month INT NOT NULL,
            year INT NOT NULL,
            basic FLOAT NOT NULL DEFAULT 0,
            housing FLOAT DEFAULT 0,
            transport FLOAT DEFAULT 0,
            overtime_pay FLOAT DEFAULT 0,
            overtime_hours FLOAT DEFAULT 0,
            bonus FLOAT DEFAULT 0,
            deduction FLOAT DEFAULT 0,
            net_salary FLOAT NOT NULL DEFAULT 0,
            status VARCHAR(16) NOT NULL DEFAULT 'DRAFT',
            payment_date DATE,
            payment_method VARCHAR(32),
            notes TEXT,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       9,
		Description: "One payroll record per employee and period.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS payroll_period_idx
        ON payroll (user_id, month, year)
        WHERE deleted_at IS NULL;`,
	},
	{
		Index:       10,
		Description: "Create table: company_info.",
		Query: `
        CREATE TABLE IF NOT EXISTS company_info (
            id SERIAL PRIMARY KEY,
            company_name VARCHAR(250) NOT NULL,
            latitude FLOAT NOT NULL,
            longitude FLOAT NOT NULL,
            radius FLOAT NOT NULL,
            start_time TIME,
            end_time TIME,
            late_time TIME,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       11,
		Description: "Insert data for table: company_info.",
		Query: `
        INSERT INTO company_info (
            id, company_name, latitude, longitude, radius,
            start_time, end_time, late_time, created_by, updated_by
        )
        SELECT 1, 'Workforce HQ', 35.7031509, 139.7745439, 3000.0,
            '09:00:00', '17:00:00', '09:20:00', 1, 1
        WHERE NOT EXISTS (SELECT id FROM company_info WHERE id = 1);`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
