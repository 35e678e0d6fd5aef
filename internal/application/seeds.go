package application

// DefaultServices returns the catalog a fresh store is seeded with.
func DefaultServices() []Service {
	return []Service{
		{ID: "service-1", Name: "Haircut", Description: "Professional haircut with styling consultation", Duration: 30, Price: 35, Category: "Hair Services", IsActive: true},
		{ID: "service-2", Name: "Hair Coloring", Description: "Full hair coloring service with premium products", Duration: 90, Price: 120, Category: "Hair Services", IsActive: true},
		{ID: "service-3", Name: "Consultation", Description: "One-on-one consultation to discuss your needs", Duration: 60, Price: 50, Category: "Consultation", IsActive: true},
		{ID: "service-4", Name: "Deep Tissue Massage", Description: "Therapeutic massage targeting muscle tension", Duration: 90, Price: 95, Category: "Wellness", IsActive: true},
		{ID: "service-5", Name: "Facial Treatment", Description: "Rejuvenating facial with premium skincare", Duration: 60, Price: 85, Category: "Skincare", IsActive: true},
		{ID: "service-6", Name: "Manicure & Pedicure", Description: "Complete nail care service", Duration: 75, Price: 65, Category: "Nail Services", IsActive: true},
	}
}

// DefaultBusinessHours returns the weekly opening hours a fresh store is seeded with.
func DefaultBusinessHours() []BusinessHours {
	return []BusinessHours{
		{DayOfWeek: 0, OpenTime: "00:00", CloseTime: "00:00", IsOpen: false},
		{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true},
		{DayOfWeek: 2, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true},
		{DayOfWeek: 3, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true},
		{DayOfWeek: 4, OpenTime: "09:00", CloseTime: "20:00", IsOpen: true},
		{DayOfWeek: 5, OpenTime: "09:00", CloseTime: "20:00", IsOpen: true},
		{DayOfWeek: 6, OpenTime: "10:00", CloseTime: "16:00", IsOpen: true},
	}
}
