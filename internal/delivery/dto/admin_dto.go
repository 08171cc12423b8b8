package dto

import "time"

type LatestUser struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardStats struct {
	TotalUsers       int64       `json:"total_users"`
	TotalAdmins      int64       `json:"total_admins"`
	TotalStudents    int64       `json:"total_students"`
	TotalInstructors int64       `json:"total_instructors"`
	TotalPatients    int64       `json:"total_patients"`
	TotalReports     int64       `json:"total_reports"`
	LatestUserJoined *LatestUser `json:"latest_user_joined"`
}

type DashboardResponse struct {
	Message string         `json:"message"`
	Stats   DashboardStats `json:"stats"`
}
