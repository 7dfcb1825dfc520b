package memstore

import (
	bookingRepo "grambazaar/database/repository/booking"
	cartRepo "grambazaar/database/repository/cart"
	contentRepo "grambazaar/database/repository/content"
	productRepo "grambazaar/database/repository/product"
	userRepo "grambazaar/database/repository/user"
)

var (
	_ userRepo.UserRepository       = (*UserRepo)(nil)
	_ productRepo.ProductRepository = (*ProductRepo)(nil)
	_ cartRepo.CartRepository       = (*CartRepo)(nil)
	_ bookingRepo.BookingRepository = (*BookingRepo)(nil)
	_ contentRepo.ServiceRepository = (*ServiceRepo)(nil)
	_ contentRepo.NewsRepository    = (*NewsRepo)(nil)
	_ contentRepo.MessageRepository = (*MessageRepo)(nil)
	_ contentRepo.SettingRepository = (*SettingRepo)(nil)
)
