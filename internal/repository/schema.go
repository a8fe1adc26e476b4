package repository

// APP_USERS is the one table the service guarantees on every backend; the
// fleet tables belong to the operations database.

const sqliteAppUsersDDL = `
	CREATE TABLE IF NOT EXISTS APP_USERS (
		Username TEXT PRIMARY KEY,
		Password TEXT,
		Role TEXT NOT NULL CHECK (Role IN ('viewer', 'editor'))
	)`

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS DISASTER (
		D_ID TEXT PRIMARY KEY,
		Name TEXT NOT NULL,
		Type TEXT NOT NULL,
		Location TEXT NOT NULL,
		Start_Time DATETIME NOT NULL,
		End_Time DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS DRONE (
		D_NO TEXT PRIMARY KEY,
		Model TEXT NOT NULL,
		Payload REAL,
		Flying_Hours REAL,
		D_ID TEXT,
		FOREIGN KEY (D_ID) REFERENCES DISASTER(D_ID)
	)`,
	`CREATE TABLE IF NOT EXISTS OPERATOR (
		O_ID TEXT PRIMARY KEY,
		Name TEXT NOT NULL,
		Certification TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS ASSIGNED_TO (
		O_ID TEXT NOT NULL,
		D_ID TEXT NOT NULL,
		PRIMARY KEY (O_ID, D_ID),
		FOREIGN KEY (O_ID) REFERENCES OPERATOR(O_ID),
		FOREIGN KEY (D_ID) REFERENCES DISASTER(D_ID)
	)`,
	`CREATE TABLE IF NOT EXISTS MISSION_REPORT (
		MR_ID TEXT PRIMARY KEY,
		Battery_Remaining REAL,
		Distance_Covered REAL,
		Success_Rate REAL CHECK (Success_Rate BETWEEN 0 AND 100),
		People_Aided INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS ALERTS (
		A_ID TEXT PRIMARY KEY,
		Resolution TEXT,
		MR_ID TEXT NOT NULL,
		Type TEXT,
		Severity TEXT NOT NULL CHECK (Severity IN ('Low', 'Medium', 'High', 'Critical')),
		Time DATETIME NOT NULL,
		D_NO TEXT NOT NULL,
		FOREIGN KEY (MR_ID) REFERENCES MISSION_REPORT(MR_ID),
		FOREIGN KEY (D_NO) REFERENCES DRONE(D_NO)
	)`,
	sqliteAppUsersDDL,
	`CREATE INDEX IF NOT EXISTS idx_disaster_start_time ON DISASTER(Start_Time)`,
	`CREATE INDEX IF NOT EXISTS idx_drone_disaster ON DRONE(D_ID)`,
	`CREATE INDEX IF NOT EXISTS idx_assigned_disaster ON ASSIGNED_TO(D_ID)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_drone ON ALERTS(D_NO)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_mission ON ALERTS(MR_ID)`,
}

const mysqlAppUsersDDL = `
	CREATE TABLE IF NOT EXISTS APP_USERS (
		Username VARCHAR(50) PRIMARY KEY,
		Password VARCHAR(100),
		Role ENUM('viewer','editor') NOT NULL
	)`

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS DISASTER (
		D_ID VARCHAR(20) PRIMARY KEY,
		Name VARCHAR(100) NOT NULL,
		Type VARCHAR(50) NOT NULL,
		Location VARCHAR(100) NOT NULL,
		Start_Time DATETIME NOT NULL,
		End_Time DATETIME NULL,
		INDEX idx_disaster_start_time (Start_Time)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS DRONE (
		D_NO VARCHAR(20) PRIMARY KEY,
		Model VARCHAR(50) NOT NULL,
		Payload DECIMAL(10,2) NULL,
		Flying_Hours DECIMAL(10,2) NULL,
		D_ID VARCHAR(20) NULL,
		FOREIGN KEY (D_ID) REFERENCES DISASTER(D_ID)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS OPERATOR (
		O_ID VARCHAR(20) PRIMARY KEY,
		Name VARCHAR(100) NOT NULL,
		Certification VARCHAR(100) NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS ASSIGNED_TO (
		O_ID VARCHAR(20) NOT NULL,
		D_ID VARCHAR(20) NOT NULL,
		PRIMARY KEY (O_ID, D_ID),
		FOREIGN KEY (O_ID) REFERENCES OPERATOR(O_ID),
		FOREIGN KEY (D_ID) REFERENCES DISASTER(D_ID)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS MISSION_REPORT (
		MR_ID VARCHAR(20) PRIMARY KEY,
		Battery_Remaining DECIMAL(5,2) NULL,
		Distance_Covered DECIMAL(10,2) NULL,
		Success_Rate DECIMAL(5,2) NULL,
		People_Aided INT NOT NULL DEFAULT 0
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS ALERTS (
		A_ID VARCHAR(20) PRIMARY KEY,
		Resolution VARCHAR(255) NULL,
		MR_ID VARCHAR(20) NOT NULL,
		Type VARCHAR(50) NULL,
		Severity ENUM('Low','Medium','High','Critical') NOT NULL,
		Time DATETIME NOT NULL,
		D_NO VARCHAR(20) NOT NULL,
		FOREIGN KEY (MR_ID) REFERENCES MISSION_REPORT(MR_ID),
		FOREIGN KEY (D_NO) REFERENCES DRONE(D_NO)
	) ENGINE=InnoDB`,
	mysqlAppUsersDDL,
}
